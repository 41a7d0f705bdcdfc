package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand_Prefixes(t *testing.T) {
	p := NewCommandParser()

	for _, text := range []string{"!заброс", ".заброс", "/заброс"} {
		cmd, args, ok := p.ParseCommand(text)
		assert.True(t, ok, text)
		assert.Equal(t, "заброс", cmd)
		assert.Empty(t, args)
	}
}

func TestParseCommand_Args(t *testing.T) {
	p := NewCommandParser()

	cmd, args, ok := p.ParseCommand("!купить 3")
	assert.True(t, ok)
	assert.Equal(t, "купить", cmd)
	assert.Equal(t, []string{"3"}, args)
}

func TestParseCommand_NoPrefix(t *testing.T) {
	p := NewCommandParser()

	_, _, ok := p.ParseCommand("заброс")
	assert.False(t, ok)

	_, _, ok = p.ParseCommand("просто текст в чате")
	assert.False(t, ok)
}

func TestParseCommand_EmptyAfterPrefix(t *testing.T) {
	p := NewCommandParser()

	_, _, ok := p.ParseCommand("!")
	assert.False(t, ok)

	_, _, ok = p.ParseCommand("!   ")
	assert.False(t, ok)
}

func TestParseCommand_Lowercase(t *testing.T) {
	p := NewCommandParser()

	cmd, _, ok := p.ParseCommand("!ЗАБРОС")
	assert.True(t, ok)
	assert.Equal(t, "заброс", cmd)
}

func TestParseCommand_BotMention(t *testing.T) {
	p := NewCommandParser()

	cmd, args, ok := p.ParseCommand("/cast@fishing_bot 2")
	assert.True(t, ok)
	assert.Equal(t, "cast", cmd)
	assert.Equal(t, []string{"2"}, args)
}

func TestParseCommand_SurroundingWhitespace(t *testing.T) {
	p := NewCommandParser()

	cmd, args, ok := p.ParseCommand("  !подсечка  ")
	assert.True(t, ok)
	assert.Equal(t, "подсечка", cmd)
	assert.Empty(t, args)
}
