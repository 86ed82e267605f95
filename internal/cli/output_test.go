package cli

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/quadro/internal/models"
	"github.com/thenoetrevino/quadro/internal/testutil"
	"github.com/thenoetrevino/quadro/internal/types"
)

// ============================================================================
// Success
// ============================================================================

func TestOutputFormatter_Success_QuietPrintsID(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, f.Success(&models.Project{ID: types.ProjectID(42), Name: "Alpha"}))
	})

	assert.Equal(t, "42\n", output)
}

func TestOutputFormatter_Success_QuietWithoutIDFallsThrough(t *testing.T) {
	f := &OutputFormatter{Quiet: true}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, f.Success(struct{ Name string }{"plain"}))
	})

	assert.Contains(t, output, "plain")
}

func TestOutputFormatter_Success_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, f.Success(map[string]int{"count": 3}))
	})

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 3, result["data"].(map[string]any)["count"])
}

func TestOutputFormatter_JSONResult_SuccessCannotBeOverridden(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, f.JSONResult(map[string]any{"success": false, "n": 1}))
	})

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, true, result["success"])
	assert.EqualValues(t, 1, result["n"])
}

// ============================================================================
// Errors
// ============================================================================

func TestOutputFormatter_ErrorWithSuggestion_JSON(t *testing.T) {
	f := &OutputFormatter{JSON: true}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, f.ErrorWithSuggestion("PROJECT_NOT_FOUND", "project 9 not found", "run quadro project list"))
	})

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, false, result["success"])
	errData := result["error"].(map[string]any)
	assert.Equal(t, "PROJECT_NOT_FOUND", errData["code"])
	assert.Equal(t, "project 9 not found", errData["message"])
	assert.Equal(t, "run quadro project list", errData["suggestion"])
}

func TestOutputFormatter_Error_HumanGoesToStderr(t *testing.T) {
	f := &OutputFormatter{}

	output := testutil.CaptureOutput(t, func() {
		require.NoError(t, f.Error("X", "boom"))
	})

	assert.Empty(t, strings.TrimSpace(output))
}

func TestOutputFormatter_Fail(t *testing.T) {
	f := &OutputFormatter{JSON: true}
	cause := errors.New("nope")

	var err error
	output := testutil.CaptureOutput(t, func() {
		err = f.Fail("VALIDATION_ERROR", ExitValidation, cause)
	})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ExitValidation, ExitCode(err))
	assert.Contains(t, output, `"VALIDATION_ERROR"`)
}
