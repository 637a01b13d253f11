package intake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Azizyco/WarmindoGenzC/internal/intake"
)

func TestPreOrder_Validate(t *testing.T) {
	tests := []struct {
		name    string
		p       intake.PreOrder
		wantErr error
	}{
		{
			name:    "unknown_service_type",
			p:       intake.PreOrder{GuestName: "Budi", ServiceType: "delivery"},
			wantErr: intake.ErrBadServiceType,
		},
		{
			name:    "no_name_and_no_contact",
			p:       intake.PreOrder{ServiceType: intake.Takeaway},
			wantErr: intake.ErrContactRequired,
		},
		{
			name:    "dine_in_without_table",
			p:       intake.PreOrder{GuestName: "Budi", ServiceType: intake.DineIn},
			wantErr: intake.ErrTableRequired,
		},
		{
			name: "dine_in_with_table",
			p:    intake.PreOrder{GuestName: "Budi", ServiceType: intake.DineIn, TableNo: "A3"},
		},
		{
			name: "takeaway_needs_no_table",
			p:    intake.PreOrder{Contact: "0812000111", ServiceType: intake.Takeaway},
		},
		{
			name: "contact_alone_is_enough",
			p:    intake.PreOrder{Contact: "0812000111", ServiceType: intake.DineIn, TableNo: "B1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.p.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
