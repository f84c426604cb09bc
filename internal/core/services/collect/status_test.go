package collect

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/airlens/airmon/internal/core/domain"
)

func TestIsOffline(t *testing.T) {
	tests := []struct {
		name string
		ap   domain.AccessPointRecord
		want bool
	}{
		{
			name: "explicit offline status",
			ap:   domain.AccessPointRecord{Status: "Offline"},
			want: true,
		},
		{
			name: "explicit offline connection state overrides online status",
			ap:   domain.AccessPointRecord{Status: "Online", ConnectionState: "offline"},
			want: true,
		},
		{
			name: "online any case",
			ap:   domain.AccessPointRecord{Status: "ONLINE"},
			want: false,
		},
		{
			name: "connected counts as online",
			ap:   domain.AccessPointRecord{APConnectionState: "Connected"},
			want: false,
		},
		{
			name: "all status fields blank fails open to offline",
			ap:   domain.AccessPointRecord{},
			want: true,
		},
		{
			name: "unrecognized status fails open to offline",
			ap:   domain.AccessPointRecord{Status: "flapping"},
			want: true,
		},
		{
			name: "any online field rescues unknown siblings",
			ap:   domain.AccessPointRecord{Status: "weird", ConnectionState: "online"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsOffline(tt.ap))
		})
	}
}

func TestFilterOfflinePreservesOrder(t *testing.T) {
	aps := []domain.AccessPointRecord{
		{APMac: "1", Status: "online"},
		{APMac: "2", Status: "offline"},
		{APMac: "3"},
		{APMac: "4", Status: "Connected"},
		{APMac: "5", APConnectionState: "Offline"},
	}

	offline := FilterOffline(aps)
	var macs []string
	for _, ap := range offline {
		macs = append(macs, ap.APMac)
	}
	assert.Equal(t, []string{"2", "3", "5"}, macs)
}
