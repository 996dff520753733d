package model

import "time"

// StoredIndividual is a previously known person supplied by the caller's
// storage layer. Profile is a partial Record (whatever the caller knows).
type StoredIndividual struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Profile Record `json:"profile"`
	RoleID  string `json:"roleId,omitempty"`
}

// StoredRecord is a previously extracted record already linked to an individual
type StoredRecord struct {
	ID           string    `json:"id"`
	IndividualID string    `json:"individualId"`
	Record       Record    `json:"record"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Snapshot is a read-only view of the caller's individual/record pool.
// The core never mutates it and never calls back into storage.
type Snapshot struct {
	Individuals []StoredIndividual `json:"individuals"`
	Records     []StoredRecord     `json:"records"`
}

// LatestRecordFor returns the most recently created record linked to the
// given individual, or nil if none exists.
func (s *Snapshot) LatestRecordFor(individualID string) *StoredRecord {
	var latest *StoredRecord
	for i := range s.Records {
		rec := &s.Records[i]
		if rec.IndividualID != individualID {
			continue
		}
		if latest == nil || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
		}
	}
	return latest
}

// MatchCandidate is a scored similarity between a new record and a stored
// individual. Candidates are recomputed on every match request, never cached.
type MatchCandidate struct {
	IndividualID   string  `json:"individualId"`
	Name           string  `json:"name,omitempty"`
	Score          float64 `json:"score"`
	LatestRecordID string  `json:"latestRecordId,omitempty"`
}
