package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextQuoteStatus_HappyPath(t *testing.T) {
	steps := []struct {
		event   QuoteEvent
		want    QuoteStatus
		effects []SideEffect
	}{
		{QuoteEventSubmitOffer, QuoteStatusQuoted, nil},
		{QuoteEventAccept, QuoteStatusAccepted, []SideEffect{EffectAuthorizePayment}},
		{QuoteEventStartWork, QuoteStatusInProgress, nil},
		{QuoteEventValidate, QuoteStatusCompleted, []SideEffect{EffectCapturePayment, EffectReleaseFunds}},
	}

	status := QuoteStatusPending
	for _, s := range steps {
		tr, err := NextQuoteStatus(status, s.event)
		require.NoError(t, err, "event %s from %s", s.event, status)
		require.Equal(t, s.want, tr.To)
		require.Equal(t, s.effects, tr.Effects)
		status = tr.To
	}
}

func TestNextQuoteStatus_CaptureOrdersBeforeRelease(t *testing.T) {
	tr, err := NextQuoteStatus(QuoteStatusInProgress, QuoteEventValidate)
	require.NoError(t, err)
	require.Equal(t, []SideEffect{EffectCapturePayment, EffectReleaseFunds}, tr.Effects)
}

func TestNextQuoteStatus_Rejections(t *testing.T) {
	cases := []struct {
		from  QuoteStatus
		event QuoteEvent
	}{
		{QuoteStatusPending, QuoteEventAccept},
		{QuoteStatusPending, QuoteEventValidate},
		{QuoteStatusQuoted, QuoteEventValidate},
		{QuoteStatusAccepted, QuoteEventValidate},
		{QuoteStatusAccepted, QuoteEventCancel},
		{QuoteStatusInProgress, QuoteEventCancel},
		{QuoteStatusPending, QuoteEventRaiseDispute},
		{QuoteStatusQuoted, QuoteEventRaiseDispute},
		{QuoteStatusCompleted, QuoteEventRaiseDispute},
		{QuoteStatusCompleted, QuoteEventSubmitOffer},
		{QuoteStatusCancelled, QuoteEventAccept},
		{QuoteStatusDisputed, QuoteEventValidate},
		{QuoteStatusInProgress, QuoteEventResolveRelease},
	}
	for _, tc := range cases {
		_, err := NextQuoteStatus(tc.from, tc.event)
		require.Error(t, err, "%s from %s", tc.event, tc.from)
		require.True(t, errors.Is(err, ErrPrecondition))
	}
}

// Every transition moves forward in the lifecycle, except into cancelled or disputed.
func TestQuoteTransitions_NeverRegress(t *testing.T) {
	rank := map[QuoteStatus]int{
		QuoteStatusPending:    0,
		QuoteStatusQuoted:     1,
		QuoteStatusAccepted:   2,
		QuoteStatusInProgress: 3,
		QuoteStatusCompleted:  4,
	}
	for _, tr := range QuoteTransitions() {
		if tr.To == QuoteStatusCancelled || tr.To == QuoteStatusDisputed || tr.From == QuoteStatusDisputed {
			continue
		}
		require.Greater(t, rank[tr.To], rank[tr.From], "%s -> %s", tr.From, tr.To)
	}
	for _, tr := range QuoteTransitions() {
		require.False(t, tr.From.Terminal(), "terminal status %s has an outgoing transition", tr.From)
	}
}

func TestNextQuoteStatus_ReturnsCopy(t *testing.T) {
	tr, err := NextQuoteStatus(QuoteStatusInProgress, QuoteEventValidate)
	require.NoError(t, err)
	tr.Effects[0] = EffectRefundPayment

	again, err := NextQuoteStatus(QuoteStatusInProgress, QuoteEventValidate)
	require.NoError(t, err)
	require.Equal(t, EffectCapturePayment, again.Effects[0])
	require.True(t, again.HasEffect(EffectReleaseFunds))
	require.False(t, again.HasEffect(EffectVoidAuthorization))
}
