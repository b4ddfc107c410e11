package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// AuditAction is the verb recorded for a mutating action.
type AuditAction string

const (
	AuditCreate   AuditAction = "CREATE"
	AuditUpdate   AuditAction = "UPDATE"
	AuditSign     AuditAction = "SIGN"
	AuditRegister AuditAction = "REGISTER"
)

// Audited entity types.
const (
	EntityTest          = "test"
	EntityBatch         = "batch"
	EntitySpecification = "specification"
	EntityEquipment     = "equipment"
	EntityUser          = "user"
)

// AuditState tracks whether an entry belongs to a completed unit of work.
type AuditState string

const (
	AuditCommitted   AuditState = "committed"
	AuditProvisional AuditState = "provisional"
	AuditAborted     AuditState = "aborted"
)

// AuditEntry is one immutable line of the audit trail. Only State may move,
// and only from provisional to committed or aborted.
type AuditEntry struct {
	ID         string         `json:"id"`
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	UserID     string         `json:"user_id"`
	Username   string         `json:"username"`
	Timestamp  time.Time      `json:"timestamp"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ip_address,omitempty"`
	State      AuditState     `json:"state"`
	Digest     string         `json:"digest"`
}

// digestPayload is the content covered by the entry digest. State is excluded
// since it is the one field allowed to change.
type digestPayload struct {
	ID         string         `json:"id"`
	Action     AuditAction    `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	UserID     string         `json:"user_id"`
	Username   string         `json:"username"`
	Timestamp  string         `json:"timestamp"`
	Details    map[string]any `json:"details"`
	IPAddress  string         `json:"ip_address"`
}

// ComputeDigest returns the sha256 of the entry's canonical JSON content.
// encoding/json sorts map keys, so equal entries always hash the same.
func (e *AuditEntry) ComputeDigest() (string, error) {
	b, err := json.Marshal(digestPayload{
		ID:         e.ID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		UserID:     e.UserID,
		Username:   e.Username,
		Timestamp:  e.Timestamp.UTC().Format(time.RFC3339Nano),
		Details:    e.Details,
		IPAddress:  e.IPAddress,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(b)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}

// AuditFilter narrows ReadAuditLog. Zero values mean "any".
type AuditFilter struct {
	EntityType string
	EntityID   string
	Username   string
	Action     AuditAction
	Limit      int
}
