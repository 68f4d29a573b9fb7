package session

import (
	"errors"
	"testing"

	"comparables/internal/model"
	"comparables/internal/reply"
	"comparables/internal/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(index int, products ...string) *model.Report {
	r := &model.Report{GroupIndex: index}
	for _, p := range products {
		row := model.NewReportRow()
		row.Set(model.FieldProduct, p)
		r.Rows = append(r.Rows, row)
	}
	return r
}

func TestSessionIdentifier(t *testing.T) {
	a, b := New(), New()
	_, err := uuid.Parse(a.ID)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestSessionPutReplacesByGroup(t *testing.T) {
	s := New()
	s.Put(report(2, "C"))
	s.Put(report(0, "A"))
	s.Put(report(2, "C2", "C3"))
	s.Put(nil)

	require.Equal(t, 2, s.Len())
	reports := s.Reports()
	assert.Equal(t, 0, reports[0].GroupIndex)
	assert.Equal(t, 2, reports[1].GroupIndex)
	assert.Len(t, reports[1].Rows, 2)
}

func TestSessionDropAndReset(t *testing.T) {
	s := New()
	id := s.ID
	s.Put(report(0, "A"))
	s.Put(report(1, "B"))

	s.Drop(0)
	_, ok := s.Get(0)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Reports())
	assert.Equal(t, id, s.ID)
}

func newProcessor(t *testing.T) (*Processor, store.ResponseStore) {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return NewProcessor(st, New()), st
}

func TestSubmit(t *testing.T) {
	p, st := newProcessor(t)
	text := `[{"Producto":"A","Resultados":{}}, {"Producto":"B","Resultados":{}}]`

	r, err := p.Submit(1, text)
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Len(t, r.Rows, 2)
	assert.Equal(t, 1, p.Session.Len())

	saved, err := st.Load(1)
	require.NoError(t, err)
	assert.Equal(t, text, saved)
}

func TestSubmitBlankIsIgnored(t *testing.T) {
	p, st := newProcessor(t)
	require.NoError(t, st.Save(0, "previo"))

	r, err := p.Submit(0, "  \n\t")
	require.NoError(t, err)
	assert.Nil(t, r)

	saved, _ := st.Load(0)
	assert.Equal(t, "previo", saved)
	assert.Equal(t, 0, p.Session.Len())
}

func TestSubmitParseFailureDropsEarlierReport(t *testing.T) {
	p, st := newProcessor(t)
	_, err := p.Submit(0, `{"Producto":"X","Resultados":{}}`)
	require.NoError(t, err)
	_, err = p.Submit(1, `{"Producto":"Y","Resultados":{}}`)
	require.NoError(t, err)

	_, err = p.Submit(0, "{not json")
	var perr *reply.ParseError
	require.True(t, errors.As(err, &perr))

	// the text is still saved so it can be corrected later
	saved, _ := st.Load(0)
	assert.Equal(t, "{not json", saved)

	_, ok := p.Session.Get(0)
	assert.False(t, ok)
	_, ok = p.Session.Get(1)
	assert.True(t, ok, "other groups are unaffected")
}

type failingStore struct {
	store.ResponseStore
}

func (failingStore) Save(int, string) error {
	return &store.StorageError{Op: "write", Path: "grupo_0.json", Err: errors.New("disk full")}
}

func TestSubmitStorageErrorPropagates(t *testing.T) {
	p := NewProcessor(failingStore{}, New())

	_, err := p.Submit(0, `{"Producto":"X"}`)
	var serr *store.StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 0, p.Session.Len())
}

func (failingStore) ClearAll() error {
	return &store.StorageError{Op: "remove", Path: "grupo_1.json", Err: errors.New("permission denied")}
}

func TestResetClearsSessionWhenStoreFails(t *testing.T) {
	p := NewProcessor(failingStore{}, New())
	p.Session.Put(report(0, "A"))
	p.Session.Put(report(1, "B"))

	err := p.Reset()
	var serr *store.StorageError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 0, p.Session.Len())
}

func TestRestoreAll(t *testing.T) {
	p, st := newProcessor(t)
	require.NoError(t, st.Save(0, `{"Producto":"A","Resultados":{"Comparable 1 en US":"100"}}`))
	require.NoError(t, st.Save(2, "no es json"))
	require.NoError(t, st.Save(4, "```json\n[]\n```"))

	failures, err := p.RestoreAll(0)
	require.NoError(t, err)

	require.Len(t, failures, 1)
	assert.Error(t, failures[2])

	reports := p.Session.Reports()
	require.Len(t, reports, 2)
	assert.Equal(t, 0, reports[0].GroupIndex)
	assert.Equal(t, 4, reports[1].GroupIndex)
	assert.Empty(t, reports[1].Rows)
}

func TestRestoreAllLimit(t *testing.T) {
	p, st := newProcessor(t)
	require.NoError(t, st.Save(0, `{"Producto":"A"}`))
	require.NoError(t, st.Save(5, `{"Producto":"B"}`))

	failures, err := p.RestoreAll(2)
	require.NoError(t, err)
	assert.Empty(t, failures)
	assert.Equal(t, 1, p.Session.Len())
}

func TestRestoreMissing(t *testing.T) {
	p, _ := newProcessor(t)
	r, err := p.Restore(7)
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestProcessorReset(t *testing.T) {
	p, st := newProcessor(t)
	_, err := p.Submit(0, `{"Producto":"A"}`)
	require.NoError(t, err)
	_, err = p.Submit(3, `{"Producto":"B"}`)
	require.NoError(t, err)

	require.NoError(t, p.Reset())

	assert.Equal(t, 0, p.Session.Len())
	for _, i := range []int{0, 3} {
		got, err := st.Load(i)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}
