package services

import (
	"testing"

	"vitalitygo/bmi"

	"github.com/stretchr/testify/assert"
)

func TestNotifierDefaultsToNormal(t *testing.T) {
	n := NewBMINotifier()
	assert.Equal(t, bmi.Normal, n.Current("u1"))
}

func TestSubscribeDeliversCurrentValueImmediately(t *testing.T) {
	n := NewBMINotifier()
	n.Publish("u1", bmi.Overweight)

	ch := n.Subscribe("u1")
	assert.Equal(t, bmi.Overweight, <-ch)
}

func TestPublishFansOutToSubscribers(t *testing.T) {
	n := NewBMINotifier()
	ch := n.Subscribe("u1")
	assert.Equal(t, bmi.Normal, <-ch) // initial value

	changed := n.Publish("u1", bmi.Obese)
	assert.True(t, changed)
	assert.Equal(t, bmi.Obese, <-ch)
	assert.Equal(t, bmi.Obese, n.Current("u1"))
}

func TestPublishDeduplicatesUnchangedCategory(t *testing.T) {
	n := NewBMINotifier()
	n.Publish("u1", bmi.Overweight)
	assert.False(t, n.Publish("u1", bmi.Overweight))
	assert.True(t, n.Publish("u1", bmi.Normal))
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	n := NewBMINotifier()
	ch := n.Subscribe("u1")
	<-ch
	n.Unsubscribe("u1", ch)

	_, open := <-ch
	assert.False(t, open)
}

func TestNotifierIsolatesUsers(t *testing.T) {
	n := NewBMINotifier()
	n.Publish("u1", bmi.Obese)
	assert.Equal(t, bmi.Normal, n.Current("u2"))
}
