package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	types "github.com/Apurer/pet-adoption-api/internal/domains/adoptions/application/types"
)

type normalizedApproval struct {
	AdoptionID int64 `json:"adoption_id"`
}

// FingerprintApproval hashes the approval payload, excluding the idempotency key.
func FingerprintApproval(input types.ApproveAdoptionInput) (string, error) {
	payload, err := json.Marshal(normalizedApproval{AdoptionID: input.AdoptionID})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
