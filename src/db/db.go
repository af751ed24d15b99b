package db

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

/*
A general error to be used when no results are found. This is the error returned
by QueryOne, and can generally be used by other database helpers that fetch a single
result but find nothing.
*/
var NotFound = errors.New("not found")

/*
Performs a SQL query and returns a slice of all the result rows. The query is just
plain SQL, but make sure to read the package documentation for details. You must
explicitly provide the type argument - this is how it knows what Go type to map the
results to, and it cannot be inferred.

Any SQL query may be performed, including INSERT and UPDATE - as long as it returns
a result set, you can use this. If the query does not return a result set, or you
simply do not care about the result set, call Exec directly on your pgx connection.

This function always returns pointers to the values. This is convenient for structs,
but for other types, you may wish to use QueryScalar.
*/
func Query[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]*T, error) {
	destType := reflect.TypeOf(*new(T))
	rows, err := conn.Query(ctx, compileQuery(query, destType), args...)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			panic("query exceeded its deadline")
		}
		return nil, err
	}

	if typeIsScalar(destType) {
		return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*T, error) {
			var val T
			err := row.Scan(&val)
			return &val, err
		})
	}
	return pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[T])
}

/*
Identical to Query, but panics if there was an error.
*/
func MustQuery[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) []*T {
	result, err := Query[T](ctx, conn, query, args...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
Identical to Query, but returns only the first result row. If there are no
rows in the result set, returns NotFound.
*/
func QueryOne[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (*T, error) {
	results, err := Query[T](ctx, conn, query, args...)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, NotFound
	}
	return results[0], nil
}

/*
Identical to QueryOne, but panics if there was an error.
*/
func MustQueryOne[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) *T {
	result, err := QueryOne[T](ctx, conn, query, args...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
Identical to Query, but returns concrete values instead of pointers. More convenient
for primitive types.
*/
func QueryScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) ([]T, error) {
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[T])
}

/*
Identical to QueryScalar, but panics if there was an error.
*/
func MustQueryScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) []T {
	result, err := QueryScalar[T](ctx, conn, query, args...)
	if err != nil {
		panic(err)
	}
	return result
}

/*
Identical to QueryScalar, but returns only the first result value. If there are
no rows in the result set, returns NotFound.
*/
func QueryOneScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) (T, error) {
	results, err := QueryScalar[T](ctx, conn, query, args...)
	if err != nil {
		var zero T
		return zero, err
	}
	if len(results) == 0 {
		var zero T
		return zero, NotFound
	}
	return results[0], nil
}

/*
Identical to QueryOneScalar, but panics if there was an error.
*/
func MustQueryOneScalar[T any](
	ctx context.Context,
	conn ConnOrTx,
	query string,
	args ...any,
) T {
	result, err := QueryOneScalar[T](ctx, conn, query, args...)
	if err != nil {
		panic(err)
	}
	return result
}

var reColumnsPlaceholder = regexp.MustCompile(`\$columns({(.*?)})?`)

func compileQuery(query string, destType reflect.Type) string {
	columnsMatch := reColumnsPlaceholder.FindStringSubmatch(query)
	if columnsMatch == nil {
		return query
	}

	// The presence of the $columns placeholder means that the destination type
	// must be a struct, and we will plonk that struct's fields into the query.
	if typeIsScalar(destType) {
		panic("$columns can only be used when querying into a struct")
	}

	prefix := columnsMatch[2]
	columnNames := getColumnNames(destType, prefix)
	columnNamesString := strings.Join(columnNames, ", ")

	return reColumnsPlaceholder.ReplaceAllString(query, columnNamesString)
}

func getColumnNames(destType reflect.Type, prefix string) []string {
	if destType.Kind() == reflect.Ptr {
		destType = destType.Elem()
	}
	if destType.Kind() != reflect.Struct {
		panic(fmt.Errorf("can only get column names from a struct, got type '%v'", destType.Name()))
	}

	var columnNames []string
	for _, field := range reflect.VisibleFields(destType) {
		columnName := field.Tag.Get("db")
		if columnName == "" || columnName == "-" {
			continue
		}

		fullName := columnName
		if prefix != "" {
			fullName = prefix + "." + columnName
		}
		columnNames = append(columnNames, fullName)
	}

	return columnNames
}

/*
Struct types that pgx can scan directly into, and which therefore should be
treated as single columns rather than $columns-style destinations.
*/
var scalarStructTypes = []reflect.Type{
	reflect.TypeOf(time.Time{}),
	reflect.TypeOf(uuid.UUID{}),
	reflect.TypeOf(netip.Addr{}),
	reflect.TypeOf(netip.Prefix{}),
}

func typeIsScalar(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return true
	}
	for _, scalar := range scalarStructTypes {
		if t == scalar {
			return true
		}
	}
	return false
}
