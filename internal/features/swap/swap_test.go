package swap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  ExecuteRequest
		want string
	}{
		{"valid", ExecuteRequest{FromCrypto: "bitcoin", ToCrypto: "ethereum", Amount: 100}, ""},
		{"zero amount", ExecuteRequest{FromCrypto: "bitcoin", ToCrypto: "ethereum", Amount: 0}, "Please enter a valid swap amount"},
		{"negative amount", ExecuteRequest{FromCrypto: "bitcoin", ToCrypto: "ethereum", Amount: -1}, "Please enter a valid swap amount"},
		{"unknown source", ExecuteRequest{FromCrypto: "litecoin", ToCrypto: "ethereum", Amount: 100}, "Unsupported cryptocurrency"},
		{"unknown target", ExecuteRequest{FromCrypto: "bitcoin", ToCrypto: "litecoin", Amount: 100}, "Unsupported cryptocurrency"},
		{"same asset", ExecuteRequest{FromCrypto: "bitcoin", ToCrypto: "bitcoin", Amount: 100}, "Cannot swap a cryptocurrency to itself"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Validate(tt.req))
		})
	}
}
