package contents

import (
	"gopkg.in/yaml.v3"
)

const (
	keySource   = "src"
	keyDest     = "dst"
	keyType     = "type"
	keyMode     = "mode"
	keyOwner    = "owner"
	keyGroup    = "group"
	keyFileInfo = "file_info"
	keyContents = "contents"
)

func (p *Parser) parseYAML(input string) ([]Descriptor, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(input), &doc); err != nil {
		pe := yamlError(ErrMalformedInput, -1, "%v", err)
		pe.Err = err
		return nil, pe
	}

	root := resolve(&doc)
	if root != nil && root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = resolve(root.Content[0])
	}
	if root != nil && root.Kind == yaml.MappingNode {
		root = resolve(lookup(root, keyContents))
	}
	if root == nil || root.Kind != yaml.SequenceNode {
		return nil, yamlError(ErrStructuralMismatch, -1, "YAML contents must be an array")
	}

	out := make([]Descriptor, 0, len(root.Content))
	for index, item := range root.Content {
		d, err := p.extractEntry(resolve(item), index)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (p *Parser) extractEntry(entry *yaml.Node, index int) (Descriptor, error) {
	var src, dst string
	if entry != nil && entry.Kind == yaml.MappingNode {
		src = scalarText(lookup(entry, keySource))
		dst = scalarText(lookup(entry, keyDest))
	}
	if !requireEndpoints(src, dst) {
		return Descriptor{}, yamlError(ErrMissingRequiredField, index,
			"content file at index %d must have 'src' and 'dst' properties", index)
	}

	typeNode := lookup(entry, keyType)
	if typeNode != nil && typeNode.Kind != yaml.ScalarNode {
		return Descriptor{}, yamlError(ErrStructuralMismatch, index, "type at index %d must be a scalar", index)
	}
	typeText := scalarText(typeNode)
	kind, err := ParseKind(typeText)
	if err != nil {
		pe := yamlError(ErrInvalidEnumValue, index,
			"invalid type \"%s\" at index %d. Must be one of: %s", typeText, index, kindsList())
		pe.Value = typeText
		return Descriptor{}, pe
	}

	d := Descriptor{Source: src, Destination: dst, Kind: kind}

	nested := lookup(entry, keyFileInfo)
	if nested != nil && nested.Kind != yaml.MappingNode && !isNull(nested) {
		return Descriptor{}, yamlError(ErrStructuralMismatch, index, "file_info at index %d must be a mapping", index)
	}

	fi := &FileInfo{}
	modeNode := lookup(entry, keyMode)
	if isNull(modeNode) {
		modeNode = lookup(nested, keyMode)
	}
	if !isNull(modeNode) {
		if modeNode.Kind != yaml.ScalarNode {
			return Descriptor{}, yamlError(ErrInvalidMode, index, "mode at index %d must be a scalar", index)
		}
		mode, err := ParseMode(modeNode.Value, p.Policy)
		if err != nil {
			pe := yamlError(ErrInvalidMode, index, "invalid mode at index %d: %v", index, err)
			pe.Value = modeNode.Value
			return Descriptor{}, pe
		}
		fi.Mode = mode
	}
	fi.Owner = firstNonEmpty(scalarText(lookup(entry, keyOwner)), scalarText(lookup(nested, keyOwner)))
	fi.Group = firstNonEmpty(scalarText(lookup(entry, keyGroup)), scalarText(lookup(nested, keyGroup)))
	if !fi.empty() {
		d.FileInfo = fi
	}
	return d, nil
}

// lookup returns the value node for key in a mapping, or nil.
func lookup(mapping *yaml.Node, key string) *yaml.Node {
	if mapping == nil || mapping.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if k := resolve(mapping.Content[i]); k != nil && k.Value == key {
			return resolve(mapping.Content[i+1])
		}
	}
	return nil
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

// scalarText returns the literal text of a non-null scalar. Aliases are
// followed; anything else yields "".
func scalarText(n *yaml.Node) string {
	if isNull(n) || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
