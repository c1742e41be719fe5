package identity

import (
	"fmt"
	"testing"
)

func TestLoopbackEndpoint(t *testing.T) {
	type testCase struct {
		Address  string
		Expected string
		Err      bool
	}

	testCases := []testCase{
		{Address: ":8080", Expected: "http://localhost:8080/asistenciaV2r/api/userInfo"},
		{Address: ":9090", Expected: "http://localhost:9090/asistenciaV2r/api/userInfo"},
		{Address: "0.0.0.0:3000", Expected: "http://localhost:3000/asistenciaV2r/api/userInfo"},
		{Address: "[::]:3000", Expected: "http://localhost:3000/asistenciaV2r/api/userInfo"},
		{Address: "127.0.0.1:8081", Expected: "http://127.0.0.1:8081/asistenciaV2r/api/userInfo"},
		{Address: "[::1]:8081", Expected: "http://[::1]:8081/asistenciaV2r/api/userInfo"},
		{Address: "portal.internal:80", Expected: "http://portal.internal:80/asistenciaV2r/api/userInfo"},
		{Address: "localhost", Err: true},
		{Address: "localhost:", Err: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			endpoint, err := LoopbackEndpoint(tc.Address)

			if tc.Err {
				if err == nil {
					t.Errorf("err: expected an error, got endpoint '%s'", endpoint)
				}
				return
			}

			if err != nil {
				t.Fatalf("%+v", err)
			}

			if e, g := tc.Expected, endpoint; e != g {
				t.Errorf("endpoint: expected '%v', got '%v'", e, g)
			}
		})
	}
}
