package commands

import (
	"bytes"
	"testing"

	"hospital-portal/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
)

func TestRenderSeedReport(t *testing.T) {
	var out bytes.Buffer
	renderSeedReport(&out, &dto.SeedReport{Collections: []dto.SeedCollectionReport{
		{Collection: "patients", Inserted: 12},
		{Collection: "doctors", Skipped: true, Reason: "already holds 4 records"},
	}})

	text := out.String()
	assert.Contains(t, text, "COLLECTION")
	assert.Contains(t, text, "patients")
	assert.Contains(t, text, "12")
	assert.Contains(t, text, "already holds 4 records")
	assert.Contains(t, text, "true")
}
