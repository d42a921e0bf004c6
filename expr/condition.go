package expr

import "strings"

// conditionOps in fixed priority order. The two-character operators come
// first so "a>=b" never splits on ">".
var conditionOps = []string{"==", "!=", ">=", "<=", ">", "<"}

// evalCondition evaluates the condition argument of SI. A bare term is
// scanned for a comparison operator before any column resolution, so
// "edad>=18" compares the edad column against 18. Anything more structured
// (nested calls, quoted strings) is evaluated and tested for truthiness.
func (ev *evaluator) evalCondition(arg *Expression) (bool, error) {
	if raw, ok := arg.bareTerm(); ok {
		return ev.evalConditionString(raw), nil
	}
	v, err := ev.evalExpression(arg, modeArg)
	if err != nil {
		return false, err
	}
	return truthy(v), nil
}

// evalConditionString scans the operators in priority order; the first one
// present splits the string exactly once. Both sides resolve like function
// arguments, then compare numerically when both parse as numbers and
// lexicographically otherwise. With no operator the whole value is truthy.
func (ev *evaluator) evalConditionString(cond string) bool {
	for _, op := range conditionOps {
		idx := strings.Index(cond, op)
		if idx < 0 {
			continue
		}
		left := ev.resolveTerm(cond[:idx], modeArg)
		right := ev.resolveTerm(cond[idx+len(op):], modeArg)
		return compare(op, left, right)
	}
	return truthy(ev.resolveTerm(cond, modeArg))
}

func compare(op, left, right string) bool {
	lf, lok := parseFloat(left)
	rf, rok := parseFloat(right)
	if lok && rok {
		switch op {
		case "==":
			return lf == rf
		case "!=":
			return lf != rf
		case ">=":
			return lf >= rf
		case "<=":
			return lf <= rf
		case ">":
			return lf > rf
		case "<":
			return lf < rf
		}
		return false
	}
	l, r := strings.TrimSpace(left), strings.TrimSpace(right)
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case ">=":
		return l >= r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case "<":
		return l < r
	}
	return false
}
