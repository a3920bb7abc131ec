package sheets

import (
	"context"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	titles []string
	values map[string][][]string
	errFor string
}

func (c stubClient) SheetTitles(context.Context) ([]string, error) {
	if c.titles == nil {
		return nil, eris.New("no spreadsheet")
	}
	return c.titles, nil
}

func (c stubClient) Values(_ context.Context, title string) ([][]string, error) {
	if title == c.errFor {
		return nil, eris.New("quota exceeded")
	}
	return c.values[title], nil
}

func TestGoogleSourceFetchAll(t *testing.T) {
	client := stubClient{
		titles: []string{"Cashier Reporting", "Free Cover 8.1"},
		values: map[string][][]string{
			"Cashier Reporting": {{"Date:", "8/1"}},
			"Free Cover 8.1":    {{"Name", "Count of guests"}, {"Mike", "5"}},
		},
	}

	set, err := NewGoogleSource(client).FetchAll(context.Background())
	require.NoError(t, err)
	require.Len(t, set, 2)
	assert.Equal(t, "8/1", set["Cashier Reporting"].Cell(0, 1))
	assert.Equal(t, "Mike", set["Free Cover 8.1"].Cell(1, 0))
}

func TestGoogleSourceFetchAll_TitlesError(t *testing.T) {
	_, err := NewGoogleSource(stubClient{}).FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list titles")
}

func TestGoogleSourceFetchAll_ValuesError(t *testing.T) {
	client := stubClient{
		titles: []string{"Cashier Reporting", "Broken Sheet"},
		values: map[string][][]string{"Cashier Reporting": {{"Date:"}}},
		errFor: "Broken Sheet",
	}

	_, err := NewGoogleSource(client).FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken Sheet")
}
