package model

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"gorm.io/gorm/schema"
)

func init() {
	schema.RegisterSerializer("unixmilli", UnixMilliSerializer{})
}

// UnixMilliSerializer stores a time.Time or *time.Time field as UTC unix
// milliseconds. Driver time text cannot carry years before 0001, which the
// event time grammar accepts.
type UnixMilliSerializer struct{}

func (UnixMilliSerializer) Scan(ctx context.Context, field *schema.Field, dst reflect.Value, dbValue interface{}) error {
	var ms int64
	switch v := dbValue.(type) {
	case nil:
		return nil
	case int64:
		ms = v
	case int:
		ms = int64(v)
	case float64:
		ms = int64(v)
	default:
		return fmt.Errorf("unsupported value %T for column %s", dbValue, field.DBName)
	}
	return field.Set(ctx, dst, time.UnixMilli(ms).UTC())
}

func (UnixMilliSerializer) Value(ctx context.Context, field *schema.Field, dst reflect.Value, fieldValue interface{}) (interface{}, error) {
	switch v := fieldValue.(type) {
	case time.Time:
		return v.UnixMilli(), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return v.UnixMilli(), nil
	}
	return nil, fmt.Errorf("unsupported field type %T for column %s", fieldValue, field.DBName)
}
