// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"database/sql"
	"testing"

	"github.com/MKhiriev/gsc-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func Test_buildUpdateProfileQuery(t *testing.T) {
	tests := []struct {
		name      string
		patch     models.ClaimsPatch
		wantQuery string
		wantArgs  []any
	}{
		{
			name:      "empty patch touches updated_at only",
			patch:     models.ClaimsPatch{},
			wantQuery: "UPDATE users SET updated_at = NOW() WHERE user_id = $1",
			wantArgs:  []any{int64(7)},
		},
		{
			name:      "name and gender",
			patch:     models.ClaimsPatch{Name: strPtr("Ada"), Gender: strPtr("female")},
			wantQuery: "UPDATE users SET updated_at = NOW(), name = $1, gender = $2 WHERE user_id = $3",
			wantArgs:  []any{"Ada", sql.NullString{String: "female", Valid: true}, int64(7)},
		},
		{
			name:      "cleared photo becomes NULL",
			patch:     models.ClaimsPatch{Photo: strPtr("")},
			wantQuery: "UPDATE users SET updated_at = NOW(), photo = $1 WHERE user_id = $2",
			wantArgs:  []any{sql.NullString{}, int64(7)},
		},
		{
			name:      "all fields in stable order",
			patch:     models.ClaimsPatch{Name: strPtr("n"), Phone: strPtr("+1"), Gender: strPtr("g"), Photo: strPtr("p")},
			wantQuery: "UPDATE users SET updated_at = NOW(), name = $1, phone = $2, gender = $3, photo = $4 WHERE user_id = $5",
			wantArgs: []any{
				"n",
				sql.NullString{String: "+1", Valid: true},
				sql.NullString{String: "g", Valid: true},
				sql.NullString{String: "p", Valid: true},
				int64(7),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := buildUpdateProfileQuery(7, tt.patch)
			require.NoError(t, err)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
