package plan

import (
	"fmt"
	"strings"
	"unicode"

	"quilldb/internal/app/dberr"
	"quilldb/internal/app/interfaces"
	"quilldb/internal/app/parse"
	"quilldb/internal/app/query"
	"quilldb/internal/app/tx"
	"quilldb/internal/app/types"
)

// Planner is the single entry point from parsed SQL text to an
// executable plan or an applied update: it parses the command, runs a
// validation pass over the parsed data, then delegates plan
// construction to a QueryPlanner or UpdatePlanner.
type Planner struct {
	qPlanner QueryPlanner
	uPlanner UpdatePlanner
}

func NewPlanner(qPlanner QueryPlanner, uPlanner UpdatePlanner) *Planner {
	return &Planner{
		qPlanner: qPlanner,
		uPlanner: uPlanner,
	}
}

// CreateQueryPlan parses cmd as a SELECT statement and builds its plan.
// A parse failure is returned as an error wrapping dberr.ErrBadSyntax.
func (p *Planner) CreateQueryPlan(cmd string, t *tx.Transaction) (interfaces.Plan, error) {
	var data *parse.QueryData
	if err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("%v: %w", r, dberr.ErrBadSyntax)
			}
		}()
		data = parse.NewParser(cmd).Query()
		return nil
	}(); err != nil {
		return nil, err
	}
	if err := p.verifyQuery(data); err != nil {
		return nil, err
	}

	return p.qPlanner.CreatePlan(data, t)
}

// ExecuteUpdate parses cmd as an INSERT/DELETE/UPDATE/CREATE statement,
// validates it, and applies it. Returns the number of affected rows
// (0 for DDL statements).
func (p *Planner) ExecuteUpdate(cmd string, t *tx.Transaction) (int, error) {
	parser := parse.NewParser(cmd)
	obj := parser.UpdateCmd()

	if err := p.verifyUpdate(obj); err != nil {
		return 0, err
	}

	switch data := obj.(type) {
	case *parse.InsertData:
		return p.uPlanner.ExecuteInsert(data, t)
	case *parse.DeleteData:
		return p.uPlanner.ExecuteDelete(data, t)
	case *parse.ModifyData:
		return p.uPlanner.ExecuteModify(data, t)
	case *parse.CreateTableData:
		return p.uPlanner.ExecuteCreateTable(data, t)
	case *parse.CreateViewData:
		return p.uPlanner.ExecuteCreateView(data, t)
	case *parse.CreateIndexData:
		return p.uPlanner.ExecuteCreateIndex(data, t)
	default:
		return 0, fmt.Errorf("unknown update command type: %T", data)
	}
}

func (p *Planner) verifyUpdate(data interface{}) error {
	if data == nil {
		return fmt.Errorf("update verification failed: nil data received")
	}

	switch cmd := data.(type) {
	case *parse.InsertData:
		if err := p.verifyInsertData(cmd); err != nil {
			return fmt.Errorf("insert verification failed: %w", err)
		}
	case *parse.DeleteData:
		if err := p.verifyDeleteData(cmd); err != nil {
			return fmt.Errorf("delete verification failed: %w", err)
		}
	case *parse.ModifyData:
		if err := p.verifyModifyData(cmd); err != nil {
			return fmt.Errorf("modify verification failed: %w", err)
		}
	case *parse.CreateTableData:
		if err := p.verifyTableData(cmd); err != nil {
			return fmt.Errorf("table verification failed: %w", err)
		}
	case *parse.CreateViewData:
		if err := p.verifyViewData(cmd); err != nil {
			return fmt.Errorf("view verification failed: %w", err)
		}
	case *parse.CreateIndexData:
		if err := p.verifyIndexData(cmd); err != nil {
			return fmt.Errorf("index verification failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown update command type: %T", data)
	}

	return nil
}

func (p *Planner) verifyQuery(data interface{}) error {
	if data == nil {
		return fmt.Errorf("query verification failed: nil data received")
	}

	queryData, ok := data.(*parse.QueryData)
	if !ok {
		return fmt.Errorf("invalid query data type: %T", data)
	}

	for _, col := range queryData.Fields() {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("query: empty field name")
		}
	}
	for _, tbl := range queryData.Tables() {
		if strings.TrimSpace(tbl) == "" {
			return fmt.Errorf("query: empty table name")
		}
	}

	if queryData.Pred() != nil {
		if err := p.validatePredicate(queryData.Pred()); err != nil {
			return fmt.Errorf("query: invalid predicate: %w", err)
		}
	}

	return nil
}

func (p *Planner) verifyInsertData(cmd *parse.InsertData) error {
	if cmd.TableName() == "" {
		return fmt.Errorf("missing table name")
	}
	if len(cmd.Values()) == 0 {
		return fmt.Errorf("no values provided")
	}
	if len(cmd.Fields()) > 0 && len(cmd.Fields()) != len(cmd.Values()) {
		return fmt.Errorf("column count (%d) does not match values count (%d)", len(cmd.Fields()), len(cmd.Values()))
	}
	return nil
}

func (p *Planner) verifyDeleteData(cmd *parse.DeleteData) error {
	if cmd.TableName() == "" {
		return fmt.Errorf("missing table name")
	}
	if cmd.Pred() != nil {
		if err := p.validatePredicate(cmd.Pred()); err != nil {
			return fmt.Errorf("invalid predicate: %w", err)
		}
	}
	return nil
}

func (p *Planner) verifyModifyData(cmd *parse.ModifyData) error {
	if cmd.TableName() == "" {
		return fmt.Errorf("missing table name")
	}
	if cmd.NewValue() == nil {
		return fmt.Errorf("no fields specified for update")
	}
	if cmd.Pred() != nil {
		if err := p.validatePredicate(cmd.Pred()); err != nil {
			return fmt.Errorf("invalid predicate: %w", err)
		}
	}
	return nil
}

func (p *Planner) verifyViewData(cmd *parse.CreateViewData) error {
	if cmd.ViewName() == "" {
		return fmt.Errorf("missing view name")
	}
	if cmd.ViewDef() == "" {
		return fmt.Errorf("missing view definition")
	}
	return nil
}

func (p *Planner) verifyTableData(cmd *parse.CreateTableData) error {
	if cmd.TableName() == "" {
		return fmt.Errorf("missing table name")
	}
	if len(cmd.NewSchema().Fields()) == 0 {
		return fmt.Errorf("no fields defined")
	}
	return nil
}

func (p *Planner) verifyIndexData(cmd *parse.CreateIndexData) error {
	if cmd.IndexName() == "" {
		return fmt.Errorf("missing index name")
	}
	if cmd.TableName() == "" {
		return fmt.Errorf("missing table name")
	}
	if cmd.FieldName() == "" {
		return fmt.Errorf("missing field name")
	}
	return nil
}

func (p *Planner) validatePredicate(pred *query.Predicate) error {
	if pred == nil {
		return fmt.Errorf("nil predicate")
	}
	if len(pred.Terms()) == 0 {
		return nil
	}

	for i, term := range pred.Terms() {
		if err := validateTerm(term, i); err != nil {
			return fmt.Errorf("invalid term at index %d: %w", i, err)
		}
	}

	return checkDuplicateTerms(pred)
}

func validateTerm(term *query.Term, index int) error {
	if term == nil {
		return fmt.Errorf("term is nil")
	}

	if err := validateExpression(term.LHS(), "left-hand"); err != nil {
		return err
	}
	if err := validateExpression(term.RHS(), "right-hand"); err != nil {
		return err
	}

	return nil
}

func validateExpression(expr *query.Expression, side string) error {
	if expr == nil {
		return fmt.Errorf("%s expression is nil", side)
	}

	if expr.IsFieldName() {
		if err := validateFieldName(expr.AsFieldName()); err != nil {
			return fmt.Errorf("%s field name invalid: %w", side, err)
		}
	} else {
		if err := validateConstant(expr.AsConstant()); err != nil {
			return fmt.Errorf("%s constant invalid: %w", side, err)
		}
	}

	return nil
}

func validateFieldName(name string) error {
	if name == "" {
		return fmt.Errorf("field name cannot be empty")
	}
	if len(name) > 64 {
		return fmt.Errorf("field name too long (max 64 characters)")
	}
	if !unicode.IsLetter(rune(name[0])) {
		return fmt.Errorf("field name must start with a letter")
	}
	for _, ch := range name {
		if !unicode.IsLetter(ch) && !unicode.IsDigit(ch) && ch != '_' {
			return fmt.Errorf("invalid character %c in field name", ch)
		}
	}
	return nil
}

func validateConstant(c types.Constant) error {
	if c.AsInt() == nil && c.AsString() == nil {
		return fmt.Errorf("constant has no value set")
	}
	return nil
}

func checkDuplicateTerms(p *query.Predicate) error {
	seen := make(map[string]bool)

	for _, term := range p.Terms() {
		termStr := term.String()
		if seen[termStr] {
			return fmt.Errorf("duplicate term found %s", termStr)
		}
		seen[termStr] = true
	}

	return nil
}
