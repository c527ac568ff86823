package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ParseDefaults(t *testing.T) {
	opts, err := Parse(nil)

	assert.NoError(t, err)
	assert.Equal(t, "me", opts.Mailbox)
	assert.Equal(t, "Inbox", opts.Folder)
	assert.Equal(t, 10, opts.Messages)
}

func Test_ParseAllFlags(t *testing.T) {
	opts, err := Parse([]string{
		"--mailbox", "shared@example.com",
		"--folder", "Sent Items",
		"--messages", "25",
	})

	assert.NoError(t, err)
	assert.Equal(t, "shared@example.com", opts.Mailbox)
	assert.Equal(t, "Sent Items", opts.Folder)
	assert.Equal(t, 25, opts.Messages)
}

func Test_ParseUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"--unknown-flag"})

	var argErr ArgumentError
	assert.ErrorAs(t, err, &argErr)
	assert.Equal(t, "--unknown-flag", argErr.Argument)
}

func Test_ParseNonIntegerMessagesKeepsDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "word", value: "many"},
		{name: "float", value: "2.5"},
		{name: "empty-ish", value: "x10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := Parse([]string{"--messages", tt.value})

			assert.NoError(t, err)
			assert.Equal(t, DefaultMessages, opts.Messages)
		})
	}
}

func Test_ParseFlagMissingValue(t *testing.T) {
	// A trailing flag with no value falls through to the unknown-flag
	// check, same as the original.
	_, err := Parse([]string{"--folder"})

	var argErr ArgumentError
	assert.ErrorAs(t, err, &argErr)
	assert.Equal(t, "--folder", argErr.Argument)
}

func Test_ParseIgnoresBareTokens(t *testing.T) {
	opts, err := Parse([]string{"--folder", "Drafts", "leftover"})

	assert.NoError(t, err)
	assert.Equal(t, "Drafts", opts.Folder)
}
