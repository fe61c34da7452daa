// Package blocks provides the standard block handlers for the tagscript
// engine: boolean control blocks, randomness, string utilities, variable
// access and assignment, walk termination, and a rate-limiting cooldown
// block with pluggable storage.
//
// Blocks are handed to an interpreter as an ordered list; order is dispatch
// priority. A typical bot-style setup:
//
//	interpreter := tagscript.MustNew([]tagscript.Block{
//	    blocks.NewIfBlock(),
//	    blocks.NewAnyBlock(),
//	    blocks.NewAllBlock(),
//	    blocks.NewFiftyFiftyBlock(),
//	    blocks.NewRangeBlock(),
//	    blocks.NewReplaceBlock(),
//	    blocks.NewMembershipBlock(),
//	    blocks.NewAssignBlock(),
//	    blocks.NewStopBlock(),
//	    blocks.NewVariableBlock(),
//	})
//
// The variable block goes last: it accepts any declaration present in
// Response.Variables, so an earlier position would shadow same-named
// control blocks.
package blocks

import (
	"strconv"
	"strings"
)

// PayloadSeparator splits a conditional payload into its true and false
// branches, and a cooldown payload into key and message.
const PayloadSeparator = "|"

// splitPayload splits on the payload separator into at most n parts.
// Returns nil when the separator is absent.
func splitPayload(payload string, n int) []string {
	if !strings.Contains(payload, PayloadSeparator) {
		return nil
	}
	return strings.SplitN(payload, PayloadSeparator, n)
}

// parseIntoOutput picks the branch of a conditional payload: the part before
// the separator when result is true, after it when false. A payload without
// a separator is returned whole on true and empty on false.
func parseIntoOutput(payload string, result bool) string {
	parts := splitPayload(payload, 2)
	if len(parts) == 2 {
		if result {
			return parts[0]
		}
		return parts[1]
	}
	if result {
		return payload
	}
	return ""
}

// Comparison operators recognized by parseCondition, longest first so ">="
// wins over ">".
var conditionOperators = []string{"!=", "==", ">=", "<=", ">", "<"}

// parseCondition evaluates a single boolean expression. Both operands are
// compared numerically when they both parse as numbers, falling back to
// string comparison. An expression without an operator is true only for the
// literal "true".
func parseCondition(expr string) bool {
	for _, op := range conditionOperators {
		idx := strings.Index(expr, op)
		if idx < 0 {
			continue
		}
		left := strings.TrimSpace(expr[:idx])
		right := strings.TrimSpace(expr[idx+len(op):])
		return compareOperands(op, left, right)
	}
	return strings.EqualFold(strings.TrimSpace(expr), "true")
}

// compareOperands applies one comparison operator.
func compareOperands(op, left, right string) bool {
	lf, lerr := strconv.ParseFloat(left, 64)
	rf, rerr := strconv.ParseFloat(right, 64)
	numeric := lerr == nil && rerr == nil

	switch op {
	case "==":
		if numeric {
			return lf == rf
		}
		return left == right
	case "!=":
		if numeric {
			return lf != rf
		}
		return left != right
	case ">=":
		if numeric {
			return lf >= rf
		}
		return left >= right
	case "<=":
		if numeric {
			return lf <= rf
		}
		return left <= right
	case ">":
		if numeric {
			return lf > rf
		}
		return left > right
	case "<":
		if numeric {
			return lf < rf
		}
		return left < right
	}
	return false
}

// parseConditionList evaluates a separator-delimited list of expressions.
func parseConditionList(parameter string) []bool {
	parts := strings.Split(parameter, PayloadSeparator)
	results := make([]bool, len(parts))
	for i, part := range parts {
		results[i] = parseCondition(part)
	}
	return results
}
