package finance

import (
	"strings"
	"testing"
)

func TestStatementBalance(t *testing.T) {
	testCases := []struct {
		name     string
		document string
		path     string
		want     Money
		wantErr  bool
	}{
		{
			name:     "numeric balance",
			document: `{"account":{"iban":"CH93...","balance":150.00}}`,
			path:     "$.account.balance",
			want:     CHF(15000),
		},
		{
			name:     "string balance",
			document: `{"closing_balance":"-42.50"}`,
			path:     "$.closing_balance",
			want:     CHF(-4250),
		},
		{
			name:     "balance inside a list",
			document: `{"accounts":[{"balance":99.95},{"balance":1.00}]}`,
			path:     "$.accounts[0].balance",
			want:     CHF(9995),
		},
		{
			name:     "path misses",
			document: `{"account":{}}`,
			path:     "$.account.balance",
			wantErr:  true,
		},
		{
			name:     "non numeric value",
			document: `{"balance":{"nested":true}}`,
			path:     "$.balance",
			wantErr:  true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := StatementBalance(strings.NewReader(tc.document), tc.path, "CHF")
			if tc.wantErr {
				if err == nil {
					t.Fatalf("StatementBalance() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("StatementBalance() error = %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("StatementBalance() = %v, want %v", got, tc.want)
			}
		})
	}
}
