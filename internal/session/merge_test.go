// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-fleet-keeper/models"
)

func TestMergeAccount(t *testing.T) {
	tests := []struct {
		name     string
		defaults models.Account
		cfg      models.Account
		doc      models.SessionDocument
		want     models.Account
	}{
		{
			name: "config only",
			cfg:  models.Account{Username: "u1", Password: "p", WhitelistIDs: []uint32{10}},
			want: models.Account{Username: "u1", Password: "p", WhitelistIDs: []uint32{10}},
		},
		{
			name:     "config overrides defaults",
			defaults: models.Account{FetchFreeEntries: true, BlacklistIDs: []uint32{1}},
			cfg:      models.Account{Username: "u1", Password: "p", BlacklistIDs: []uint32{2}},
			want:     models.Account{Username: "u1", Password: "p", BlacklistIDs: []uint32{2}, FetchFreeEntries: true},
		},
		{
			name: "stored token wins over config token",
			cfg:  models.Account{Username: "u1", Password: "p", RefreshToken: "C"},
			doc:  models.SessionDocument{RefreshToken: "T"},
			want: models.Account{Username: "u1", Password: "p", RefreshToken: "T"},
		},
		{
			name: "empty stored token keeps config token",
			cfg:  models.Account{Username: "u1", RefreshToken: "C"},
			want: models.Account{Username: "u1", RefreshToken: "C"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mergeAccount(tt.defaults, tt.cfg, tt.doc))
		})
	}
}

func TestMergeAccount_DoesNotAliasConfig(t *testing.T) {
	cfg := models.Account{Username: "u1", Password: "p", WhitelistIDs: []uint32{1, 2}}

	merged := mergeAccount(models.Account{}, cfg, models.SessionDocument{})
	merged.WhitelistIDs[0] = 99

	assert.Equal(t, uint32(1), cfg.WhitelistIDs[0])
}
