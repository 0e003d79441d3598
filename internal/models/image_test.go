package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageURLForName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Tomatoes", "/static/images/ai_tomatoes.jpg"},
		{"Fresh Tomatoes", "/static/images/ai_tomatoes.jpg"},
		{"CHERRY TOMATO MIX", "/static/images/ai_tomatoes.jpg"},
		{"spinach", "/static/images/ai_spinach.jpg"},
		{"Baby Spinach", "/static/images/ai_spinach.jpg"},
		{"Cabbage", "/static/images/ai_cabbage.jpg"},
		{"Quinoa", "/static/images/default_ai_product.jpg"},
		{"", "/static/images/default_ai_product.jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ImageURLForName(tc.name), "name %q", tc.name)
	}
}

func TestImageURLForNameDeterministic(t *testing.T) {
	assert.Equal(t, ImageURLForName("Heirloom Tomatoes"), ImageURLForName("Heirloom Tomatoes"))
}

func TestRoles(t *testing.T) {
	assert.True(t, RoleFarmer.Valid())
	assert.True(t, RoleCustomer.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("reseller").Valid())

	assert.True(t, RoleFarmer.SelfService())
	assert.True(t, RoleCustomer.SelfService())
	assert.False(t, RoleAdmin.SelfService(), "admin accounts are not self-service")
}
