package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchOrder(t *testing.T) {
	d := NewDispatcher()

	var order []string
	d.Subscribe(ListenerFunc(func(Event) { order = append(order, "first") }))
	d.Subscribe(ListenerFunc(func(Event) { order = append(order, "second") }))

	d.Dispatch(NewNotebook{})

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestUnsubscribe(t *testing.T) {
	d := NewDispatcher()
	rec := &Recorder{}
	other := &Recorder{}

	unsubscribe := d.Subscribe(rec)
	d.Subscribe(other)
	d.Dispatch(TriggerItem{Item: "a/b"})

	unsubscribe()
	unsubscribe()
	d.Dispatch(TriggerItem{Item: "c"})

	assert.Len(t, rec.Events, 1)
	assert.Len(t, other.Events, 2)
	assert.Equal(t, 1, d.Len())
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	rec := &Recorder{}

	var unsubscribe func()
	unsubscribe = d.Subscribe(ListenerFunc(func(Event) { unsubscribe() }))
	d.Subscribe(rec)

	d.Dispatch(NewNotebook{})
	d.Dispatch(NewNotebook{})

	assert.Len(t, rec.Events, 2)
	assert.Equal(t, 1, d.Len())
}

func TestRecorderOfKind(t *testing.T) {
	rec := &Recorder{}
	rec.HandleEvent(ImportNotebook{Name: "a.ipynb", Content: "{}", Dropped: true})
	rec.HandleEvent(ToggleNotebookListUI{Force: true})
	rec.HandleEvent(ImportNotebook{})

	imports := rec.OfKind(KindImportNotebook)
	assert.Len(t, imports, 2)
	assert.Equal(t, "a.ipynb", imports[0].(ImportNotebook).Name)
	assert.False(t, imports[1].(ImportNotebook).Dropped)

	rec.Reset()
	assert.Empty(t, rec.Events)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "ImportNotebook", ImportNotebook{}.Kind().String())
	assert.Equal(t, "NewNotebook", NewNotebook{}.Kind().String())
	assert.Equal(t, "TriggerItem", TriggerItem{}.Kind().String())
	assert.Equal(t, "ToggleNotebookListUI", ToggleNotebookListUI{}.Kind().String())
	assert.Equal(t, "Unknown", Kind(42).String())
}
