package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/fluxshop/internal/shoptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	srv       *shoptest.Server
	storePath string
}

func newHarness(t *testing.T) harness {
	t.Helper()
	return harness{
		srv:       shoptest.New(t),
		storePath: filepath.Join(t.TempDir(), "state.db"),
	}
}

// run executes one CLI invocation as a separate process would.
func (h harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	c := newCLI()
	var out bytes.Buffer
	c.root.SetOut(&out)
	c.root.SetErr(&out)
	c.root.SetArgs(append([]string{
		"--api-url", h.srv.URL,
		"--store", "sqlite",
		"--store-path", h.storePath,
	}, args...))

	err := c.root.ExecuteContext(t.Context())
	require.NoError(t, c.close())
	return out.String(), err
}

func TestCLI_ShoppingSession(t *testing.T) {
	h := newHarness(t)
	lamp := h.srv.AddProduct("Desk Lamp", 12.5)
	h.srv.AddUser("Ann", "ann@example.com", "secret1", false)

	out, err := h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	out, err = h.run(t, "login", "--email", "ann@example.com", "--password", "secret1")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as ann@example.com.")

	out, err = h.run(t, "products", "--search", "lamp")
	require.NoError(t, err)
	assert.Contains(t, out, "Desk Lamp")

	_, err = h.run(t, "cart", "add", lamp.ID)
	require.NoError(t, err)
	_, err = h.run(t, "cart", "qty", lamp.ID, "3")
	require.NoError(t, err)

	out, err = h.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Subtotal: USD 37.50")

	out, err = h.run(t, "checkout", "--name", "Ann Lee", "--address", "1 Main St", "--payment", "cod")
	require.NoError(t, err)
	assert.Contains(t, out, "Total paid: USD 37.50")

	out, err = h.run(t, "cart", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Cart is empty.")

	_, err = h.run(t, "logout")
	require.NoError(t, err)
	out, err = h.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestCLI_Failures(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "checkout: empty cart",
			args:    []string{"checkout", "--name", "Ann", "--address", "1 Main St"},
			wantErr: "Your cart is empty.",
		},
		{
			name:    "login: invalid email",
			args:    []string{"login", "--email", "nope", "--password", "secret1"},
			wantErr: "Enter a valid email and a 6+ character password.",
		},
		{
			name:    "login: rejected",
			args:    []string{"login", "--email", "ghost@example.com", "--password", "secret1"},
			wantErr: "Invalid credentials",
		},
		{
			name:    "admin save: not admin",
			args:    []string{"admin", "save", "--title", "Chair", "--price", "10"},
			wantErr: "Admin only",
		},
		{
			name:    "cart add: unknown product",
			args:    []string{"cart", "add", "missing"},
			wantErr: "Product not found",
		},
		{
			name:    "cart qty: not a number",
			args:    []string{"cart", "qty", "p1", "two"},
			wantErr: "quantity[two] is not a number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)

			_, err := h.run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestCLI_AdminSave(t *testing.T) {
	h := newHarness(t)
	h.srv.AddUser("Root", "root@example.com", "secret1", true)

	_, err := h.run(t, "login", "--email", "root@example.com", "--password", "secret1")
	require.NoError(t, err)

	out, err := h.run(t, "admin", "save", "--title", "Chair", "--price", "49.90", "--category", "home")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved Chair")

	out, err = h.run(t, "admin", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "49.90")
	assert.Equal(t, 1, h.srv.ProductMutations())
}
