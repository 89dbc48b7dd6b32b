package agent

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/nickzhog/storage-bench/internal/agent/config"
	"github.com/nickzhog/storage-bench/pkg/logging"
	"github.com/stretchr/testify/assert"
)

func Test_agent_Pass(t *testing.T) {
	tests := []struct {
		name      string
		readAfter bool
		fetchCode int
		wantErr   bool
		wantCalls map[string]int
	}{
		{
			name:      "fetch and read",
			readAfter: true,
			fetchCode: http.StatusOK,
			wantCalls: map[string]int{"GET http://localhost" + fetchPath: 1, "GET http://localhost" + readPath: 1},
		},
		{
			name:      "fetch only",
			readAfter: false,
			fetchCode: http.StatusOK,
			wantCalls: map[string]int{"GET http://localhost" + fetchPath: 1},
		},
		{
			name:      "fetch failed, no read",
			readAfter: true,
			fetchCode: http.StatusInternalServerError,
			wantErr:   true,
			wantCalls: map[string]int{"GET http://localhost" + fetchPath: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpmock.Activate()
			defer httpmock.DeactivateAndReset()

			assert := assert.New(t)

			httpmock.RegisterResponder(http.MethodGet, "http://localhost"+fetchPath,
				httpmock.NewStringResponder(tt.fetchCode, "Data fetched and inserted successfully"))
			httpmock.RegisterResponder(http.MethodGet, "http://localhost"+readPath,
				httpmock.NewStringResponder(http.StatusOK, "Data read successfully"))

			cfg := config.NewConfig()
			cfg.Settings.Address = "localhost/"
			cfg.Settings.ReadAfter = tt.readAfter

			err := NewAgent(cfg, logging.GetLogger()).Pass(context.Background())
			if tt.wantErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}

			info := httpmock.GetCallCountInfo()
			for k, v := range tt.wantCalls {
				assert.Equal(v, info[k], k)
			}
			assert.Equal(len(tt.wantCalls), httpmock.GetTotalCallCount())
		})
	}
}

func Test_agent_RunStopsOnCancel(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// первый проход выполняется сразу, после него агент должен остановиться
	httpmock.RegisterResponder(http.MethodGet, "http://localhost"+fetchPath,
		func(req *http.Request) (*http.Response, error) {
			cancel()
			return httpmock.NewStringResponse(http.StatusOK, "ok"), nil
		})

	cfg := config.NewConfig()
	cfg.Settings.Address = "http://localhost"
	cfg.Settings.ReadAfter = false

	NewAgent(cfg, logging.GetLogger()).Run(ctx)
	assert.Equal(t, 1, httpmock.GetTotalCallCount())
}

type fakeCaller struct {
	calls    []string
	fetchErr error
}

func (f *fakeCaller) FetchAndInsert(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "fetch")
	return "inserted", f.fetchErr
}

func (f *fakeCaller) ReadAll(ctx context.Context) (string, error) {
	f.calls = append(f.calls, "read")
	return "read", nil
}

func Test_agent_PassWithCaller(t *testing.T) {
	tests := []struct {
		name      string
		readAfter bool
		fetchErr  error
		wantCalls []string
	}{
		{name: "fetch and read", readAfter: true, wantCalls: []string{"fetch", "read"}},
		{name: "fetch only", readAfter: false, wantCalls: []string{"fetch"}},
		{name: "fetch failed", readAfter: true, fetchErr: errors.New("unavailable"), wantCalls: []string{"fetch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert := assert.New(t)

			cfg := config.NewConfig()
			cfg.Settings.ReadAfter = tt.readAfter
			caller := &fakeCaller{fetchErr: tt.fetchErr}

			err := NewAgentWithCaller(cfg, caller, logging.GetLogger()).Pass(context.Background())
			assert.ErrorIs(err, tt.fetchErr)
			assert.Equal(tt.wantCalls, caller.calls)
		})
	}
}
