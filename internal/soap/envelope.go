package soap

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
)

const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	encodingNS = "http://schemas.xmlsoap.org/soap/encoding/"
	xsiNS      = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS      = "http://www.w3.org/2001/XMLSchema"
)

func encodeEnvelope(uri string, method string, params Params) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("SOAP-ENV:Envelope")
	env.CreateAttr("xmlns:SOAP-ENV", envelopeNS)
	env.CreateAttr("xmlns:SOAP-ENC", encodingNS)
	env.CreateAttr("xmlns:xsi", xsiNS)
	env.CreateAttr("xmlns:xsd", xsdNS)
	env.CreateAttr("xmlns:ns1", uri)
	env.CreateAttr("SOAP-ENV:encodingStyle", encodingNS)

	call := env.CreateElement("SOAP-ENV:Body").CreateElement("ns1:" + method)
	for _, p := range params {
		if err := encodeValue(call, p.Name, p.Value); err != nil {
			return nil, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
	}

	return doc.WriteToBytes()
}

func encodeValue(parent *etree.Element, name string, value any) error {
	el := parent.CreateElement(name)

	switch v := value.(type) {
	case nil:
		el.CreateAttr("xsi:nil", "true")
	case string:
		el.CreateAttr("xsi:type", "xsd:string")
		el.SetText(v)
	case bool:
		el.CreateAttr("xsi:type", "xsd:boolean")
		el.SetText(strconv.FormatBool(v))
	case int:
		el.CreateAttr("xsi:type", "xsd:int")
		el.SetText(strconv.Itoa(v))
	case int64:
		el.CreateAttr("xsi:type", "xsd:int")
		el.SetText(strconv.FormatInt(v, 10))
	case float64:
		el.CreateAttr("xsi:type", "xsd:double")
		el.SetText(strconv.FormatFloat(v, 'f', -1, 64))
	case time.Time:
		el.CreateAttr("xsi:type", "xsd:dateTime")
		el.SetText(v.Format(time.RFC3339))
	case []string:
		items := make([]any, len(v))
		for i, s := range v {
			items[i] = s
		}
		return encodeArray(el, items)
	case []int64:
		items := make([]any, len(v))
		for i, n := range v {
			items[i] = n
		}
		return encodeArray(el, items)
	case []any:
		return encodeArray(el, v)
	case map[string]any:
		// Struct members have no meaningful order; keys are sorted so the
		// payload is deterministic.
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if err := encodeValue(el, k, v[k]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unsupported value type %T", value)
	}

	return nil
}

func encodeArray(el *etree.Element, items []any) error {
	el.CreateAttr("xsi:type", "SOAP-ENC:Array")
	el.CreateAttr("SOAP-ENC:arrayType", fmt.Sprintf("xsd:anyType[%d]", len(items)))
	for _, item := range items {
		if err := encodeValue(el, "item", item); err != nil {
			return err
		}
	}
	return nil
}

// decodeEnvelope extracts either the result value or the fault from a
// response body. The second return value is non-nil when the body carries a
// SOAP fault or cannot be parsed at all.
func decodeEnvelope(body []byte) (any, *Fault) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, &Fault{Code: "Client", Message: fmt.Sprintf("malformed response: %v", err)}
	}

	root := doc.Root()
	if root == nil {
		return nil, &Fault{Code: "Client", Message: "empty response document"}
	}

	bodyEl := childByTag(root, "Body")
	if bodyEl == nil {
		return nil, &Fault{Code: "Client", Message: "response has no body element"}
	}

	if faultEl := childByTag(bodyEl, "Fault"); faultEl != nil {
		return nil, &Fault{
			Code:    childText(faultEl, "faultcode"),
			Message: childText(faultEl, "faultstring"),
		}
	}

	// The wrapper element (<methodResponse>) holds a single result element,
	// conventionally named "return".
	wrapper := firstChild(bodyEl)
	if wrapper == nil {
		return nil, nil
	}
	ret := firstChild(wrapper)
	if ret == nil {
		return nil, nil
	}

	return decodeValue(ret), nil
}

func decodeValue(el *etree.Element) any {
	if el.SelectAttrValue("xsi:nil", "") == "true" {
		return nil
	}

	children := el.ChildElements()
	if len(children) > 0 {
		if isArray(el, children) {
			items := make([]any, 0, len(children))
			for _, ch := range children {
				items = append(items, decodeValue(ch))
			}
			return items
		}

		members := make(map[string]any, len(children))
		for _, ch := range children {
			members[ch.Tag] = decodeValue(ch)
		}
		return members
	}

	text := strings.TrimSpace(el.Text())

	switch localType(el.SelectAttrValue("xsi:type", "")) {
	case "int", "long", "short", "byte", "integer":
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return n
		}
	case "double", "float", "decimal":
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return f
		}
	case "boolean":
		if b, err := strconv.ParseBool(text); err == nil {
			return b
		}
	case "dateTime":
		if t, err := time.Parse(time.RFC3339, text); err == nil {
			return t
		}
	}

	return text
}

func isArray(el *etree.Element, children []*etree.Element) bool {
	if localType(el.SelectAttrValue("xsi:type", "")) == "Array" {
		return true
	}
	for _, ch := range children {
		if ch.Tag != "item" {
			return false
		}
	}
	return true
}

// localType strips the namespace prefix from a type attribute value such as
// "xsd:int" or "SOAP-ENC:Array".
func localType(qualified string) string {
	if i := strings.LastIndex(qualified, ":"); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// childByTag matches on the local tag name only, so the caller does not
// depend on whatever namespace prefix the server chose.
func childByTag(el *etree.Element, tag string) *etree.Element {
	for _, ch := range el.ChildElements() {
		if ch.Tag == tag {
			return ch
		}
	}
	return nil
}

func childText(el *etree.Element, tag string) string {
	if ch := childByTag(el, tag); ch != nil {
		return strings.TrimSpace(ch.Text())
	}
	return ""
}

func firstChild(el *etree.Element) *etree.Element {
	children := el.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}
