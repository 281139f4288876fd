package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"hotel-ob/internal/wizard"
)

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	r.StepDispatched(wizard.StepHotel, wizard.OutcomeSuccess)
	r.StepDispatched(wizard.StepHotel, wizard.OutcomeSuccess)
	r.StepDispatched(wizard.StepRoomInfo, wizard.OutcomePrecondition)
	r.CallFailed(wizard.StepInformationPolicies, "createInformationPolicy(pets)", true)
	r.CallFailed(wizard.StepInformationPolicies, "createInformationPolicy(cancellation)", true)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()

	assert.Contains(t, body, `hotelob_wizard_step_dispatches_total{outcome="success",step="hotel"} 2`)
	assert.Contains(t, body, `hotelob_wizard_step_dispatches_total{outcome="precondition",step="roomInfo"} 1`)
	assert.Contains(t, body, `hotelob_wizard_call_failures_total{blocking="true",call="createInformationPolicy",step="informationPolicies"} 2`)
}

var _ wizard.Observer = (*Recorder)(nil)
