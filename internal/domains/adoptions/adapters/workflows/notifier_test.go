package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	adoptionworkflows "github.com/Apurer/pet-adoption-api/internal/platform/temporal/workflows/adoptions"
)

type fakeStarter struct {
	options client.StartWorkflowOptions
	args    []interface{}
	err     error
}

func (f *fakeStarter) ExecuteWorkflow(_ context.Context, options client.StartWorkflowOptions, _ interface{}, args ...interface{}) (client.WorkflowRun, error) {
	f.options = options
	f.args = args
	return nil, f.err
}

type recordingMailer struct {
	sent []ports.Invitation
	err  error
}

func (m *recordingMailer) SendDocumentsInvitation(_ context.Context, inv ports.Invitation) error {
	m.sent = append(m.sent, inv)
	return m.err
}

var approved = domain.AdoptionApproved{AdoptionID: 3, ClientID: 5, SolicitationID: "sol-9", Name: "Maria", Email: "maria@x.com"}

func TestTemporalNotifier_StartsWorkflowPerSolicitation(t *testing.T) {
	starter := &fakeStarter{}

	err := NewTemporalNotifier(starter).NotifyApproval(context.Background(), approved)

	require.NoError(t, err)
	assert.Equal(t, "adoption-documents-sol-9", starter.options.ID)
	assert.Equal(t, adoptionworkflows.DocumentsInvitationTaskQueue, starter.options.TaskQueue)
	require.Len(t, starter.args, 1)
	input, ok := starter.args[0].(adoptionworkflows.DocumentsInvitationWorkflowInput)
	require.True(t, ok)
	assert.Equal(t, "maria@x.com", input.Invitation.Email)
	assert.Equal(t, int64(3), input.AdoptionID)
}

func TestTemporalNotifier_AlreadyStartedIsSuccess(t *testing.T) {
	starter := &fakeStarter{err: serviceerror.NewWorkflowExecutionAlreadyStarted("exists", "", "run")}

	require.NoError(t, NewTemporalNotifier(starter).NotifyApproval(context.Background(), approved))
}

func TestTemporalNotifier_WrapsStartErrors(t *testing.T) {
	boom := errors.New("frontend unavailable")
	err := NewTemporalNotifier(&fakeStarter{err: boom}).NotifyApproval(context.Background(), approved)
	require.ErrorIs(t, err, boom)
}

func TestInlineNotifier_SendsInvitation(t *testing.T) {
	mailer := &recordingMailer{}

	require.NoError(t, NewInlineNotifier(mailer).NotifyApproval(context.Background(), approved))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, ports.Invitation{Name: "Maria", Email: "maria@x.com", ClientID: 5, SolicitationID: "sol-9"}, mailer.sent[0])
}
