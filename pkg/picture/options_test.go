package picture

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureOptions_Flags(t *testing.T) {
	opts := CaptureOptions{
		{Key: "w", Value: "100"},
		{Key: "quality", Value: "80"},
		{Key: "rot", Value: "180"},
		{Key: "exif", Value: "IFD0.Artist=pi"},
	}
	assert.Equal(t, []string{
		"-w", "100",
		"--quality", "80",
		"-rot", "180",
		"--exif", "IFD0.Artist=pi",
	}, opts.Flags())
}

func TestCaptureOptions_UnmarshalKeepsOrder(t *testing.T) {
	var req CaptureRequest
	body := `{"directory":"d1","options":{"w":100,"quality":80,"h":75.50,"ex":"night","vf":true}}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, CaptureOptions{
		{Key: "w", Value: "100"},
		{Key: "quality", Value: "80"},
		{Key: "h", Value: "75.50"},
		{Key: "ex", Value: "night"},
		{Key: "vf", Value: "true"},
	}, req.Options)
	assert.Equal(t, []string{"-w", "100", "--quality", "80", "-h", "75.50", "-ex", "night", "-vf", "true"}, req.Options.Flags())
}

func TestCaptureOptions_UnmarshalDuplicateKeyKeepsFirstPosition(t *testing.T) {
	var opts CaptureOptions
	require.NoError(t, json.Unmarshal([]byte(`{"w":1,"h":2,"w":3}`), &opts))
	assert.Equal(t, CaptureOptions{{Key: "w", Value: "3"}, {Key: "h", Value: "2"}}, opts)
}

func TestCaptureOptions_UnmarshalNullAndEmpty(t *testing.T) {
	var req CaptureRequest
	require.NoError(t, json.Unmarshal([]byte(`{"directory":"d1","options":null}`), &req))
	assert.Empty(t, req.Options)

	require.NoError(t, json.Unmarshal([]byte(`{"directory":"d1","options":{}}`), &req))
	assert.Empty(t, req.Options)
	assert.Empty(t, req.Options.Flags())
}

func TestCaptureOptions_UnmarshalRejectsNonFlatValues(t *testing.T) {
	for _, body := range []string{
		`{"w":{"x":1}}`,
		`{"w":[1,2]}`,
		`{"w":null}`,
		`{"":1}`,
		`[1,2]`,
		`"w"`,
	} {
		var opts CaptureOptions
		assert.Error(t, json.Unmarshal([]byte(body), &opts), body)
	}
}

func TestCaptureOptions_MarshalKeepsOrder(t *testing.T) {
	opts := CaptureOptions{
		{Key: "quality", Value: "80"},
		{Key: "w", Value: "100"},
	}
	body, err := json.Marshal(opts)
	require.NoError(t, err)
	assert.Equal(t, `{"quality":"80","w":"100"}`, string(body))

	body, err = json.Marshal(CaptureOptions{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(body))
}
