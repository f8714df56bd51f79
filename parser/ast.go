package parser

// Node represents any AST node carrying the source line it started on.
type Node interface {
	Line() int
}

// Stmt represents a statement inside a program or block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr represents an expression.
type Expr interface {
	Node
	exprNode()
}

// NumberLiteral is a numeric literal; all numbers are floating point.
type NumberLiteral struct {
	Value float64
	Ln    int
}

func (e *NumberLiteral) Line() int { return e.Ln }
func (*NumberLiteral) exprNode()   {}

// StringLiteral is a double-quoted string literal.
type StringLiteral struct {
	Value string
	Ln    int
}

func (e *StringLiteral) Line() int { return e.Ln }
func (*StringLiteral) exprNode()   {}

// BooleanLiteral is true or false.
type BooleanLiteral struct {
	Value bool
	Ln    int
}

func (e *BooleanLiteral) Line() int { return e.Ln }
func (*BooleanLiteral) exprNode()   {}

// NullLiteral is the null keyword.
type NullLiteral struct {
	Ln int
}

func (e *NullLiteral) Line() int { return e.Ln }
func (*NullLiteral) exprNode()   {}

// Identifier refers to a variable by name.
type Identifier struct {
	Name string
	Ln   int
}

func (e *Identifier) Line() int { return e.Ln }
func (*Identifier) exprNode()   {}

// UnaryExpr is a prefix operator application (- or !).
type UnaryExpr struct {
	Op      TokenType
	Operand Expr
	Ln      int
}

func (e *UnaryExpr) Line() int { return e.Ln }
func (*UnaryExpr) exprNode()   {}

// BinaryExpr is an infix operator application.
type BinaryExpr struct {
	Op          TokenType
	Left, Right Expr
	Ln          int
}

func (e *BinaryExpr) Line() int { return e.Ln }
func (*BinaryExpr) exprNode()   {}

// IndexExpr is target[index].
type IndexExpr struct {
	Target Expr
	Index  Expr
	Ln     int
}

func (e *IndexExpr) Line() int { return e.Ln }
func (*IndexExpr) exprNode()   {}

// ArrayLiteral is [a, b, ...].
type ArrayLiteral struct {
	Elements []Expr
	Ln       int
}

func (e *ArrayLiteral) Line() int { return e.Ln }
func (*ArrayLiteral) exprNode()   {}

// DictEntry is one key: value pair of a dictionary literal.
type DictEntry struct {
	Key   Expr
	Value Expr
}

// DictLiteral is {k: v, ...}; entries keep source order.
type DictLiteral struct {
	Entries []DictEntry
	Ln      int
}

func (e *DictLiteral) Line() int { return e.Ln }
func (*DictLiteral) exprNode()   {}

// FunctionLiteral is fn(params) { body }.
type FunctionLiteral struct {
	Params []*Identifier
	Body   []Stmt
	Ln     int
}

func (e *FunctionLiteral) Line() int { return e.Ln }
func (*FunctionLiteral) exprNode()   {}

// CallExpr invokes an expression with arguments.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Ln     int
}

func (e *CallExpr) Line() int { return e.Ln }
func (*CallExpr) exprNode()   {}

// IfExpr evaluates one of two statement lists. Else is empty when absent.
type IfExpr struct {
	Cond Expr
	Then []Stmt
	Else []Stmt
	Ln   int
}

func (e *IfExpr) Line() int { return e.Ln }
func (*IfExpr) exprNode()   {}

// WhileExpr repeats Body while Cond is true.
type WhileExpr struct {
	Cond Expr
	Body []Stmt
	Ln   int
}

func (e *WhileExpr) Line() int { return e.Ln }
func (*WhileExpr) exprNode()   {}

// BlockExpr is a braced statement list evaluated in its own scope.
type BlockExpr struct {
	Stmts []Stmt
	Ln    int
}

func (e *BlockExpr) Line() int { return e.Ln }
func (*BlockExpr) exprNode()   {}

// LetStmt introduces a binding in the current scope.
type LetStmt struct {
	Name  *Identifier
	Value Expr
	Ln    int
}

func (s *LetStmt) Line() int { return s.Ln }
func (*LetStmt) stmtNode()   {}

// AssignStmt mutates an existing binding or container slot. Target is
// always an *Identifier or an *IndexExpr.
type AssignStmt struct {
	Target Expr
	Value  Expr
	Ln     int
}

func (s *AssignStmt) Line() int { return s.Ln }
func (*AssignStmt) stmtNode()   {}

// ReturnStmt exits the enclosing function. Value may be nil.
type ReturnStmt struct {
	Value Expr
	Ln    int
}

func (s *ReturnStmt) Line() int { return s.Ln }
func (*ReturnStmt) stmtNode()   {}

// ExprStmt evaluates an expression; its value is the running result.
type ExprStmt struct {
	Expr Expr
	Ln   int
}

func (s *ExprStmt) Line() int { return s.Ln }
func (*ExprStmt) stmtNode()   {}
