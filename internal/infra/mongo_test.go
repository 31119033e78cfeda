package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoClientOptions_DecodesNestedDocumentsAsMaps(t *testing.T) {
	opts := MongoClientOptions("mongodb://localhost:27017")
	require.NoError(t, opts.Validate())
	require.NotNil(t, opts.BSONOptions)
	assert.True(t, opts.BSONOptions.DefaultDocumentM)
	assert.Equal(t, "voyabot", *opts.AppName)
}
