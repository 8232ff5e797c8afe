package entities

import "time"

// CardInstance is a player's progression record for one species
type CardInstance struct {
	TemplateID      SpeciesID `json:"templateId"`
	Level           int       `json:"level"`
	CopiesOwned     int       `json:"copiesOwned"`
	TotalCaptured   int       `json:"totalCaptured"`
	FirstCapturedAt time.Time `json:"firstCapturedAt"`
	LastCapturedAt  time.Time `json:"lastCapturedAt"`
}
