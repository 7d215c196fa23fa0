package parser

import (
	"math"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/m-mizutani/goerr/v2"
	"github.com/zclconf/go-cty/cty"
)

// Attribute decoders turn literal HCL expressions into Go values. Expressions are
// evaluated without a context, so variables and function calls are rejected.

func attrValue(attr *hcl.Attribute) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, goerr.Wrap(ErrInvalidConfig, "failed to evaluate attribute",
			goerr.V("attribute", attr.Name), goerr.V("diagnostics", diags.Error()))
	}
	if val.IsNull() || !val.IsWhollyKnown() {
		return cty.NilVal, goerr.Wrap(ErrInvalidConfig, "attribute must have a value", goerr.V("attribute", attr.Name))
	}
	return val, nil
}

// decodeString reads a string attribute
func decodeString(attr *hcl.Attribute) (string, error) {
	val, err := attrValue(attr)
	if err != nil {
		return "", err
	}
	return ctyToString(attr.Name, val)
}

// decodeStringList reads a list or tuple of strings
func decodeStringList(attr *hcl.Attribute) ([]string, error) {
	val, err := attrValue(attr)
	if err != nil {
		return nil, err
	}
	elems, err := ctyElements(attr.Name, val)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(elems))
	for _, elem := range elems {
		s, err := ctyToString(attr.Name, elem)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// decodeIntMatrix reads a list of lists of whole numbers
func decodeIntMatrix(attr *hcl.Attribute) ([][]int, error) {
	val, err := attrValue(attr)
	if err != nil {
		return nil, err
	}
	rows, err := ctyElements(attr.Name, val)
	if err != nil {
		return nil, err
	}

	out := make([][]int, 0, len(rows))
	for _, row := range rows {
		cells, err := ctyElements(attr.Name, row)
		if err != nil {
			return nil, err
		}
		values := make([]int, 0, len(cells))
		for _, cell := range cells {
			n, err := ctyToInt(attr.Name, cell)
			if err != nil {
				return nil, err
			}
			values = append(values, n)
		}
		out = append(out, values)
	}
	return out, nil
}

func ctyToString(name string, val cty.Value) (string, error) {
	if val.IsNull() || val.Type() != cty.String {
		return "", goerr.Wrap(ErrInvalidConfig, "expected a string",
			goerr.V("attribute", name), goerr.V("type", val.Type().FriendlyName()))
	}
	return val.AsString(), nil
}

func ctyToInt(name string, val cty.Value) (int, error) {
	if val.IsNull() || val.Type() != cty.Number {
		return 0, goerr.Wrap(ErrInvalidConfig, "expected a number",
			goerr.V("attribute", name), goerr.V("type", val.Type().FriendlyName()))
	}

	bf := val.AsBigFloat()
	if !bf.IsInt() {
		return 0, goerr.Wrap(ErrInvalidConfig, "expected a whole number",
			goerr.V("attribute", name), goerr.V("value", bf.String()))
	}
	i, acc := bf.Int64()
	if acc != big.Exact || i > math.MaxInt32 || i < math.MinInt32 {
		return 0, goerr.Wrap(ErrInvalidConfig, "number out of range",
			goerr.V("attribute", name), goerr.V("value", bf.String()))
	}
	return int(i), nil
}

// ctyElements returns the elements of a list or tuple value in order
func ctyElements(name string, val cty.Value) ([]cty.Value, error) {
	if val.IsNull() || !(val.Type().IsListType() || val.Type().IsTupleType()) {
		return nil, goerr.Wrap(ErrInvalidConfig, "expected a list",
			goerr.V("attribute", name), goerr.V("type", val.Type().FriendlyName()))
	}

	var out []cty.Value
	it := val.ElementIterator()
	for it.Next() {
		_, v := it.Element()
		out = append(out, v)
	}
	return out, nil
}
