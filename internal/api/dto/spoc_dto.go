package dto

import (
	"time"

	"github.com/spec-kit/spoc-booking/internal/domain"
)

// SpocResponse describes a SPOC directory entry.
type SpocResponse struct {
	SpocID         int    `json:"spoc_id"`
	Name           string `json:"name"`
	Expertise      string `json:"expertise"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
}

// SlotResponse describes an open availability slot.
type SlotResponse struct {
	SlotID    int       `json:"slot_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

// SpocAvailabilityResponse pairs a SPOC with its open slots.
type SpocAvailabilityResponse struct {
	SpocID         int            `json:"spoc_id"`
	Name           string         `json:"name"`
	Expertise      string         `json:"expertise"`
	Specialization string         `json:"specialization"`
	Email          string         `json:"email"`
	AvailableSlots []SlotResponse `json:"available_slots"`
}

// NewSpocResponse maps a domain SPOC.
func NewSpocResponse(spoc *domain.Spoc) SpocResponse {
	return SpocResponse{
		SpocID:         spoc.ID,
		Name:           spoc.Name,
		Expertise:      spoc.Expertise,
		Specialization: spoc.Specialization,
		Email:          spoc.Email,
		Phone:          spoc.Phone,
	}
}

// NewSpocAvailabilityResponse maps a domain availability result.
func NewSpocAvailabilityResponse(availability *domain.SpocAvailability) SpocAvailabilityResponse {
	slots := make([]SlotResponse, 0, len(availability.Slots))
	for _, slot := range availability.Slots {
		slots = append(slots, SlotResponse{
			SlotID:    slot.ID,
			StartTime: slot.StartTime,
			EndTime:   slot.EndTime,
		})
	}
	return SpocAvailabilityResponse{
		SpocID:         availability.Spoc.ID,
		Name:           availability.Spoc.Name,
		Expertise:      availability.Spoc.Expertise,
		Specialization: availability.Spoc.Specialization,
		Email:          availability.Spoc.Email,
		AvailableSlots: slots,
	}
}
