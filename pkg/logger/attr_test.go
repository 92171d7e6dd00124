package logger_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/csvschema/pkg/logger"
)

func TestError(t *testing.T) {
	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
	assert.Equal(t, "boom", attr.Value.Any().(error).Error())
}

func TestDomainAttrs(t *testing.T) {
	assert.Equal(t, slog.String("file", "users.csv"), logger.File("users.csv"))
	assert.Equal(t, slog.Int("row", 3), logger.Row(3))
	assert.Equal(t, slog.Int("rows", 10), logger.Rows(10))
	assert.Equal(t, slog.String("header", "email"), logger.Header("email"))
	assert.Equal(t, slog.String("rule", "blank_row"), logger.Rule("blank_row"))
	assert.Equal(t, slog.String("schema", "users"), logger.Schema("users"))
	assert.Equal(t, slog.String("component", "gate"), logger.Component("gate"))
}

func TestRunIDFromContext(t *testing.T) {
	assert.Empty(t, logger.RunIDFromContext(context.Background()))
	assert.Equal(t, "abc", logger.RunIDFromContext(logger.WithRunID(context.Background(), "abc")))
}
