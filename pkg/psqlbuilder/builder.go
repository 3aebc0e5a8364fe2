package psqlbuilder

import "github.com/Masterminds/squirrel"

// statementBuilder builder с плейсхолдерами $1, $2, ... для PostgreSQL
var statementBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select возвращает SelectBuilder с PostgreSQL-плейсхолдерами
func Select(columns ...string) squirrel.SelectBuilder {
	return statementBuilder.Select(columns...)
}

// Insert возвращает InsertBuilder с PostgreSQL-плейсхолдерами
func Insert(table string) squirrel.InsertBuilder {
	return statementBuilder.Insert(table)
}

// Update возвращает UpdateBuilder с PostgreSQL-плейсхолдерами
func Update(table string) squirrel.UpdateBuilder {
	return statementBuilder.Update(table)
}

// Delete возвращает DeleteBuilder с PostgreSQL-плейсхолдерами
func Delete(table string) squirrel.DeleteBuilder {
	return statementBuilder.Delete(table)
}
