package queries_test

import (
	"net/url"
	"testing"
	"time"

	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListOptions_Defaults(t *testing.T) {
	opts, err := queries.NewListOptions(url.Values{}, queries.ShipmentFields)

	require.NoError(t, err)
	require.NoError(t, opts.Validate())
	assert.Equal(t, queries.DefaultPage, opts.Page())
	assert.Equal(t, queries.DefaultLimit, opts.Limit())
	assert.Equal(t, []queries.SortKey{{Field: "createdAt", Desc: true}}, opts.Sort())
	assert.Empty(t, opts.Filters())
	assert.Empty(t, opts.Fields())
	assert.Empty(t, opts.Search())
}

func TestNewListOptions_ParsesFiltersSortAndWindow(t *testing.T) {
	params, err := url.ParseQuery(
		"rewardPrice[gte]=20&rewardPrice[lt]=100&from=US&status=PUBLISHED" +
			"&desiredDeliveryDate[gt]=2026-05-01&sort=-rewardPrice,createdAt&page=2&limit=10" +
			"&fields=from,to,rewardPrice&search=%20phone%20",
	)
	require.NoError(t, err)

	opts, err := queries.NewListOptions(params, queries.ShipmentFields)

	require.NoError(t, err)
	assert.Equal(t, []queries.Filter{
		{Field: "desiredDeliveryDate", Op: queries.OpGt, Value: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)},
		{Field: "from", Op: queries.OpEq, Value: "US"},
		{Field: "rewardPrice", Op: queries.OpLt, Value: 100.0},
		{Field: "rewardPrice", Op: queries.OpGte, Value: 20.0},
		{Field: "status", Op: queries.OpEq, Value: "PUBLISHED"},
	}, opts.Filters())
	assert.Equal(t, []queries.SortKey{{Field: "rewardPrice", Desc: true}, {Field: "createdAt"}}, opts.Sort())
	assert.Equal(t, 2, opts.Page())
	assert.Equal(t, 10, opts.Limit())
	assert.Equal(t, []string{"from", "to", "rewardPrice"}, opts.Fields())
	assert.Equal(t, "phone", opts.Search())
}

func TestNewListOptions_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr error
	}{
		{name: "unknown filter", query: "password=x", wantErr: errs.ErrValueIsInvalid},
		{name: "unknown operator", query: "rewardPrice[ne]=3", wantErr: errs.ErrValueIsInvalid},
		{name: "range on a string", query: "from[gte]=US", wantErr: errs.ErrValueIsInvalid},
		{name: "filter on projection-only field", query: "products=phone", wantErr: errs.ErrValueIsInvalid},
		{name: "number expected", query: "rewardPrice=cheap", wantErr: errs.ErrValueIsInvalid},
		{name: "date expected", query: "createdAt[gt]=yesterday", wantErr: errs.ErrValueIsInvalid},
		{name: "uuid expected", query: "shopperId=42", wantErr: errs.ErrValueIsInvalid},
		{name: "unknown sort", query: "sort=-secret", wantErr: errs.ErrValueIsInvalid},
		{name: "sort on projection-only field", query: "sort=statusHistory", wantErr: errs.ErrValueIsInvalid},
		{name: "unknown projection", query: "fields=from,secret", wantErr: errs.ErrValueIsInvalid},
		{name: "page zero", query: "page=0", wantErr: errs.ErrValueIsInvalid},
		{name: "limit not a number", query: "limit=ten", wantErr: errs.ErrValueIsInvalid},
		{name: "limit above maximum", query: "limit=101", wantErr: errs.ErrValueIsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := url.ParseQuery(tt.query)
			require.NoError(t, err)

			_, err = queries.NewListOptions(params, queries.ShipmentFields)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewListOptions_ProjectionOnlyFieldCanBeProjected(t *testing.T) {
	opts, err := queries.NewListOptions(url.Values{"fields": {"products,statusHistory"}}, queries.ShipmentFields)

	require.NoError(t, err)
	assert.Equal(t, []string{"products", "statusHistory"}, opts.Fields())
}

func TestNewListOptions_BoolFilter(t *testing.T) {
	opts, err := queries.NewListOptions(url.Values{"verified": {"true"}}, queries.UserFields)

	require.NoError(t, err)
	assert.Equal(t, []queries.Filter{{Field: "verified", Op: queries.OpEq, Value: true}}, opts.Filters())
}

func TestListOptions_ZeroValue(t *testing.T) {
	var opts queries.ListOptions

	require.ErrorIs(t, opts.Validate(), queries.ErrListOptionsIsNotConstructed)
}
