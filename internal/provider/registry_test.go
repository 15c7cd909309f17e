package provider

import (
	"testing"

	"doc-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SelectUnavailableDoesNotFallBack(t *testing.T) {
	r := NewRegistry(
		NewMockAdapter(domain.ProviderOpenAI, true),
		NewMockAdapter(domain.ProviderAnthropic, false),
	)

	a, err := r.Select(domain.ProviderAnthropic)
	assert.Nil(t, a)
	require.Error(t, err)
	assert.True(t, domain.HasCode(err, domain.CodeProviderUnavailable))
	assert.Contains(t, err.Error(), "anthropic")
}

func TestRegistry_SelectUnknown(t *testing.T) {
	r := NewRegistry(NewMockAdapter(domain.ProviderOpenAI, true))

	_, err := r.Select(domain.ProviderType("mistral"))
	assert.True(t, domain.HasCode(err, domain.CodeUnsupportedProvider))
}

func TestRegistry_SelectAvailable(t *testing.T) {
	openai := NewMockAdapter(domain.ProviderOpenAI, true)
	r := NewRegistry(openai)

	a, err := r.Select(domain.ProviderOpenAI)
	require.NoError(t, err)
	assert.Same(t, openai, a)
}

func TestRegistry_FirstAvailableUsesRegistrationOrder(t *testing.T) {
	a := NewMockAdapter(domain.ProviderOpenAI, false)
	b := NewMockAdapter(domain.ProviderAnthropic, true)
	c := NewMockAdapter(domain.ProviderGemini, true)
	r := NewRegistry(a, b, c)

	got, ok := r.FirstAvailable()
	require.True(t, ok)
	assert.Same(t, b, got)
}

func TestRegistry_NoneAvailable(t *testing.T) {
	r := NewRegistry(NewMockAdapter(domain.ProviderOpenAI, false))

	_, ok := r.FirstAvailable()
	assert.False(t, ok)

	_, err := r.SelectOrFirst("")
	assert.True(t, domain.HasCode(err, domain.CodeNoProviderAvailable))
}

func TestRegistry_SelectOrFirst(t *testing.T) {
	a := NewMockAdapter(domain.ProviderOpenAI, true)
	b := NewMockAdapter(domain.ProviderGemini, false)
	r := NewRegistry(a, b)

	got, err := r.SelectOrFirst("")
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = r.SelectOrFirst(domain.ProviderGemini)
	assert.True(t, domain.HasCode(err, domain.CodeProviderUnavailable))
}

func TestRegistry_RegisterReplacesInPlace(t *testing.T) {
	first := NewMockAdapter(domain.ProviderOpenAI, false)
	second := NewMockAdapter(domain.ProviderAnthropic, true)
	replacement := NewMockAdapter(domain.ProviderOpenAI, true)
	r := NewRegistry(first, second)
	r.Register(replacement)

	adapters := r.Adapters()
	require.Len(t, adapters, 2)
	assert.Same(t, replacement, adapters[0])

	got, ok := r.FirstAvailable()
	require.True(t, ok)
	assert.Same(t, replacement, got)
}
