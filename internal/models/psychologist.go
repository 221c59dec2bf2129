package models

import "time"

type Psychologist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:100;uniqueIndex;not null" json:"email"`

	OffersOnlineSessions      bool   `json:"offers_online_sessions"`
	OffersInitialConsultation bool   `json:"offers_initial_consultation"`
	OfficeAddress             string `gorm:"type:text" json:"office_address"`

	IsVerified bool `json:"is_verified"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsMarketplaceVisible tells whether parents can see and book this
// psychologist. Requires verification and at least one offered service.
func (p *Psychologist) IsMarketplaceVisible() bool {
	return p.IsVerified && (p.OffersOnlineSessions || p.OffersInitialConsultation)
}
