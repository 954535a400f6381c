package planner

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFencedJSON(t *testing.T) {
	payload := `{"workOrderNumber": "WO-1", "machineId": "M1"}`
	raw := "Sure, here is the work order you asked for:\n\n```json\n" +
		payload + "\n```\n\nLet me know if anything needs adjusting."

	got := Extract(raw)
	assert.Equal(t, payload, got)
	assert.True(t, json.Valid([]byte(got)))
}

func TestExtractFenceWithoutLanguageTag(t *testing.T) {
	payload := `{"title": "Replace heater"}`
	got := Extract("```\n" + payload + "\n```")
	assert.Equal(t, payload, got)
}

func TestExtractIdempotent(t *testing.T) {
	payload := `{"workOrderNumber":"WO-2","tasks":[{"sequence":1}]}`
	once := Extract(payload)
	require.Equal(t, payload, once)
	assert.Equal(t, once, Extract(once))
}

func TestExtractBareJSONWithProse(t *testing.T) {
	payload := `{"priority": "high"}`
	got := Extract("Here you go: " + payload + " — hope that helps!")
	assert.Equal(t, payload, got)
}

func TestExtractArrayPayload(t *testing.T) {
	payload := `[{"sequence": 1}, {"sequence": 2}]`
	got := Extract("tasks follow " + payload)
	assert.Equal(t, payload, got)
}

func TestExtractEarliestBracketWins(t *testing.T) {
	payload := `{"tasks": [1, 2]}`
	got := Extract("note [draft] " + payload)
	// '[' of "[draft]" precedes '{', so the span starts there; the
	// rightmost ']'/'}' still closes the object.
	assert.Equal(t, "[draft] "+payload, got)
}

func TestExtractStrayBackticksAndZeroWidthSpace(t *testing.T) {
	payload := `{"status": "open"}`
	got := Extract("​`" + payload + "`​")
	assert.Equal(t, payload, got)
}

func TestExtractNoJSONReturnsTrimmedInput(t *testing.T) {
	got := Extract("  I could not produce a plan for this fault.  ")
	assert.Equal(t, "I could not produce a plan for this fault.", got)
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Equal(t, "", Extract(""))
	assert.Equal(t, "", Extract("   \n\t "))
}

func TestExtractEndBeforeStart(t *testing.T) {
	// A closing brace before any opening one: no valid span.
	got := Extract("} nothing here {")
	assert.Equal(t, "} nothing here {", got)
}

func TestExtractSingleFenceMarkerSkipsFenceStep(t *testing.T) {
	payload := `{"type": "corrective"}`
	got := Extract("```json\n" + payload)
	assert.Equal(t, payload, got)
}
