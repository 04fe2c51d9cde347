package parse

import (
	"quilldb/internal/app/query"
	"quilldb/internal/app/record"
	"quilldb/internal/app/types"
)

// Parser is a recursive-descent parser for the database's SQL subset,
// converting a source string into the structured command data in this
// package (QueryData, InsertData, CreateTableData, ...).
type Parser struct {
	lexer *Lexer
}

func NewParser(s string) *Parser {
	return &Parser{
		lexer: NewLexer(s),
	}
}

// -------- PREDICATES, TERMS, EXPRESSIONS, CONSTANTS, FIELDS --------

func (p *Parser) Field() string {
	return p.lexer.EatId()
}

// Constant parses <Constant> := StrTok | IntTok.
func (p *Parser) Constant() types.Constant {
	if p.lexer.MatchStringConstant() {
		return types.NewConstantString(p.lexer.EatStringConstant())
	}
	return types.NewConstantInt(p.lexer.EatIntConstant())
}

// Expression parses <Expression> := <Field> | <Constant>.
func (p *Parser) Expression() *query.Expression {
	if p.lexer.MatchId() {
		return query.NewExpressionFieldName(p.Field())
	}
	return query.NewExpressionVal(p.Constant())
}

// Term parses <Term> := <Expression> = <Expression>.
func (p *Parser) Term() *query.Term {
	lhs := p.Expression()
	p.lexer.EatDelim('=')
	rhs := p.Expression()

	return query.NewTerm(lhs, rhs)
}

// Predicate parses <Predicate> := <Term> [ AND <Predicate> ].
func (p *Parser) Predicate() *query.Predicate {
	pred := query.NewPredicateWithTerm(p.Term())

	if p.lexer.MatchKeyword("and") {
		p.lexer.EatKeyword("and")
		pred.ConjoinWith(p.Predicate())
	}

	return pred
}

// -------- QUERIES --------

// Query parses <Query> := SELECT <SelectList> FROM <TableList> [ WHERE <Predicate> ].
func (p *Parser) Query() *QueryData {
	p.lexer.EatKeyword("select")
	fields := p.SelectList()

	p.lexer.EatKeyword("from")
	tables := p.TableList()

	pred := query.NewPredicate()

	if p.lexer.MatchKeyword("where") {
		p.lexer.EatKeyword("where")
		pred = p.Predicate()
	}

	return NewQueryData(fields, tables, pred)
}

// SelectList parses <SelectList> := <Field> [ , <SelectList> ].
func (p *Parser) SelectList() []string {
	var fields []string

	fields = append(fields, p.Field())

	if p.lexer.MatchDelim(',') {
		p.lexer.EatDelim(',')
		fields = append(fields, p.SelectList()...)
	}

	return fields
}

// TableList parses <TableList> := IdTok [ , <TableList> ].
func (p *Parser) TableList() []string {
	var tables []string
	tables = append(tables, p.lexer.EatId())

	if p.lexer.MatchDelim(',') {
		p.lexer.EatDelim(',')
		tables = append(tables, p.TableList()...)
	}

	return tables
}

// -------- UPDATE COMMANDS --------

// UpdateCmd parses any non-query command (INSERT, DELETE, UPDATE, CREATE).
func (p *Parser) UpdateCmd() interface{} {
	if p.lexer.MatchKeyword("insert") {
		return p.Insert()
	} else if p.lexer.MatchKeyword("delete") {
		return p.Delete()
	} else if p.lexer.MatchKeyword("update") {
		return p.Modify()
	}
	return p.Create()
}

// Create parses a CREATE TABLE, CREATE VIEW or CREATE INDEX command.
func (p *Parser) Create() interface{} {
	p.lexer.EatKeyword("create")

	if p.lexer.MatchKeyword("table") {
		return p.CreateTable()
	} else if p.lexer.MatchKeyword("view") {
		return p.CreateView()
	}
	return p.CreateIndex()
}

// -------- DELETE --------

// Delete parses <Delete> := DELETE FROM IdTok [ WHERE <Predicate> ].
func (p *Parser) Delete() *DeleteData {
	p.lexer.EatKeyword("delete")
	p.lexer.EatKeyword("from")

	tableName := p.lexer.EatId()

	pred := query.NewPredicate()

	if p.lexer.MatchKeyword("where") {
		p.lexer.EatKeyword("where")
		pred = p.Predicate()
	}

	return NewDeleteData(tableName, pred)
}

// -------- INSERT --------

// Insert parses <Insert> := INSERT INTO IdTok ( <FieldList> ) VALUES ( <ConstList> ).
func (p *Parser) Insert() *InsertData {
	p.lexer.EatKeyword("insert")
	p.lexer.EatKeyword("into")
	tableName := p.lexer.EatId()

	p.lexer.EatDelim('(')
	fields := p.FieldList()
	p.lexer.EatDelim(')')

	p.lexer.EatKeyword("values")
	p.lexer.EatDelim('(')
	values := p.ConstList()
	p.lexer.EatDelim(')')

	return NewInsertData(tableName, fields, values)
}

// FieldList parses <FieldList> := <Field> [ , <FieldList> ].
func (p *Parser) FieldList() []string {
	var fields []string
	fields = append(fields, p.Field())

	if p.lexer.MatchDelim(',') {
		p.lexer.EatDelim(',')
		fields = append(fields, p.FieldList()...)
	}
	return fields
}

// ConstList parses <ConstList> := <Constant> [ , <ConstList> ].
func (p *Parser) ConstList() []types.Constant {
	var constants []types.Constant
	constants = append(constants, p.Constant())

	if p.lexer.MatchDelim(',') {
		p.lexer.EatDelim(',')
		constants = append(constants, p.ConstList()...)
	}

	return constants
}

// -------- MODIFY --------

// Modify parses <Modify> := UPDATE IdTok SET <Field> = <Expression> [ WHERE <Predicate> ].
func (p *Parser) Modify() *ModifyData {
	p.lexer.EatKeyword("update")
	tableName := p.lexer.EatId()
	p.lexer.EatKeyword("set")
	fieldName := p.Field()
	p.lexer.EatDelim('=')
	newVal := p.Expression()

	pred := query.NewPredicate()

	if p.lexer.MatchKeyword("where") {
		p.lexer.EatKeyword("where")
		pred = p.Predicate()
	}

	return NewModifyData(tableName, fieldName, newVal, pred)
}

// -------- CREATE TABLE --------

// CreateTable parses <CreateTable> := CREATE TABLE IdTok ( <FieldDefs> ).
func (p *Parser) CreateTable() *CreateTableData {
	p.lexer.EatKeyword("table")
	tableName := p.lexer.EatId()
	p.lexer.EatDelim('(')
	schema := p.FieldDefs()
	p.lexer.EatDelim(')')

	return NewCreateTableData(tableName, schema)
}

// FieldDefs parses <FieldDefs> := <FieldDef> [ , <FieldDefs> ].
func (p *Parser) FieldDefs() *record.Schema {
	schema := p.FieldDef()

	if p.lexer.MatchDelim(',') {
		p.lexer.EatDelim(',')
		schema2 := p.FieldDefs()
		schema.AddAll(schema2)
	}

	return schema
}

func (p *Parser) FieldDef() *record.Schema {
	fieldName := p.Field()
	return p.FieldType(fieldName)
}

// FieldType parses <TypeDef> := INT | VARCHAR ( IntTok ).
func (p *Parser) FieldType(fieldName string) *record.Schema {
	schema := record.NewSchema()

	if p.lexer.MatchKeyword("int") {
		p.lexer.EatKeyword("int")
		schema.AddIntField(fieldName)
	} else {
		p.lexer.EatKeyword("varchar")
		p.lexer.EatDelim('(')
		strLen := p.lexer.EatIntConstant()
		p.lexer.EatDelim(')')

		schema.AddStringField(fieldName, strLen)
	}

	return schema
}

// -------- CREATE VIEW --------

// CreateView parses <CreateView> := CREATE VIEW IdTok AS <Query>.
func (p *Parser) CreateView() *CreateViewData {
	p.lexer.EatKeyword("view")
	viewName := p.lexer.EatId()
	p.lexer.EatKeyword("as")
	qd := p.Query()

	return NewCreateViewData(viewName, qd)
}

// -------- CREATE INDEX --------

// CreateIndex parses <CreateIndex> := CREATE INDEX IdTok ON IdTok ( <Field> ).
func (p *Parser) CreateIndex() *CreateIndexData {
	p.lexer.EatKeyword("index")
	indexName := p.lexer.EatId()
	p.lexer.EatKeyword("on")
	tableName := p.lexer.EatId()
	p.lexer.EatDelim('(')
	fieldName := p.Field()
	p.lexer.EatDelim(')')

	return NewCreateIndexData(indexName, tableName, fieldName)
}
