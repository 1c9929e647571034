package camunda

import (
	"errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"

	"franchise-catalog/internal/common/config"
	"franchise-catalog/internal/common/logger"
)

type nopHandler struct{}

func (nopHandler) Handle(worker.JobClient, entities.Job) {}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("rpc error: code = Unavailable desc = connection refused"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("NOT_FOUND: job 42 not found"), false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsTransient(tt.err), "%v", tt.err)
	}
}

func TestConfigFrom(t *testing.T) {
	cc := ConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500", RequestTimeout: 1500})

	assert.Equal(t, "zeebe:26500", cc.GatewayAddress)
	assert.True(t, cc.UsePlaintextConnection)
	assert.Equal(t, 1500*time.Millisecond, cc.RequestTimeout)
}

func TestStartWorker_Disabled(t *testing.T) {
	// a disabled worker never touches the client
	w := StartWorker(nil, "catalog-add-product", config.WorkerConfig{Enabled: false}, nopHandler{}, logger.NewNoOpLogger())

	assert.Nil(t, w)
	w.Stop()
}
