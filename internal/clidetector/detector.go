package clidetector

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/oxhq/fabc/internal/ast"
	"github.com/oxhq/fabc/internal/diag"
	"github.com/oxhq/fabc/internal/modcache"
	"github.com/oxhq/fabc/internal/parser"
	"github.com/oxhq/fabc/internal/tokenizer"
)

// Annotation names the CLI surface recognizes: @cli/@version/@description on
// the entry point, @imperium marking a leaf command, @alias/@mount/@optio/
// @operandum decorating commands and their parameters.
const (
	annCLI         = "cli"
	annVersion     = "version"
	annDescription = "description"
	annImperium    = "imperium" // leaf-command marker, carries a dotted path
	annAlias       = "alias"
	annMount       = "mount" // mount annotation, structured: module + path
	annOption      = "optio"
	annOperand     = "operandum"
)

// Detect walks rootPath's AST for entry-point annotations and, if they
// declare the program a CLI, resolves every mount annotation recursively to
// build one command tree. cache may be nil, in which case submodules are
// always reparsed rather than looked up in internal/modcache.
func Detect(rootPath string, root *ast.Program, cache *modcache.Cache) (*CommandTree, []ModuleImport, *diag.List) {
	d := &diag.List{}

	meta, ok := findProgramMetadata(root)
	if !ok {
		return nil, nil, d
	}

	tree := &CommandTree{
		Name:        meta.name,
		Version:     meta.version,
		Description: meta.description,
	}
	if tree.Description == "" {
		tree.Description = tree.Name
	}

	r := &resolver{
		diags:     d,
		cache:     cache,
		visiting:  map[string]bool{},
		leafPaths: map[string]bool{},
		aliases:   map[string]bool{},
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		absRoot = rootPath
	}
	r.visiting[absRoot] = true

	tree.Root = newNode(tree.Name, "")
	r.collectLeaves(root, tree.Root, "", "")
	r.collectMounts(root, filepath.Dir(absRoot), tree.Root, "", "")

	if len(r.leafPaths) == 0 {
		// No @imperium anywhere in the mount graph: the program's own
		// entry point is the one command.
		tree.Mode = ModeSingle
		tree.Root.Leaf = &Leaf{Description: tree.Description}
	} else {
		tree.Mode = ModeMulti
	}

	return tree, r.imports, d
}

type programMeta struct {
	name        string
	version     string
	description string
}

// findProgramMetadata looks for @cli among the program's file-level
// annotations and any entry-point's own annotations. Returns ok=false when
// no @cli marker is present anywhere, meaning this program is not a CLI.
func findProgramMetadata(prog *ast.Program) (programMeta, bool) {
	anns := append([]*ast.Annotation{}, prog.Annotations...)
	for _, decl := range prog.Declarations {
		if ep, isEP := decl.(*ast.EntryPoint); isEP {
			anns = append(anns, ep.Annotations...)
		}
	}

	var meta programMeta
	found := false
	for _, a := range anns {
		switch a.Name {
		case annCLI:
			meta.name = firstArg(a)
			found = true
		case annVersion:
			meta.version = firstArg(a)
		case annDescription:
			meta.description = firstArg(a)
		}
	}
	return meta, found
}

// firstArg returns the first bare-form argument of an annotation, unquoted.
func firstArg(a *ast.Annotation) string {
	if len(a.Args) == 0 {
		return ""
	}
	return unquote(a.Args[0])
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

type resolver struct {
	diags      *diag.List
	cache      *modcache.Cache
	visiting   map[string]bool // absolute path -> on the current resolution stack (cycle detection)
	leafPaths  map[string]bool // dotted command path -> already registered (duplicate detection)
	aliases    map[string]bool // module-alias namespace -> already used (collision detection)
	imports    []ModuleImport
}

// collectLeaves registers every @imperium-annotated function in prog as a
// leaf of tree, prefixed by pathPrefix and namespaced under alias (both
// empty at the root).
func (r *resolver) collectLeaves(prog *ast.Program, root *Node, pathPrefix, alias string) {
	for _, decl := range prog.Declarations {
		fn, ok := decl.(*ast.Function)
		if !ok {
			continue
		}
		leafAnn := findAnnotation(fn.Annotations, annImperium)
		if leafAnn == nil {
			continue
		}
		path := firstArg(leafAnn)
		full := path
		if pathPrefix != "" {
			full = pathPrefix + "." + path
		}
		if r.leafPaths[full] {
			r.diags.Add(diag.Diagnostic{
				Severity: diag.SeverityError,
				Category: diag.Resolution,
				Phase:    diag.PhaseCLI,
				Position: fn.Position,
				Message:  "duplicate command path " + full,
				Fatal:    true,
			})
			continue
		}
		r.leafPaths[full] = true

		leaf := &Leaf{
			FunctionName: fn.Name,
			Alias:        alias,
			ModulePrefix: pathPrefix,
			Description:  description(fn.Annotations),
		}
		for _, p := range fn.Params {
			leaf.Params = append(leaf.Params, p.Name)
			if opAnn := findAnnotation(p.Annotations, annOperand); opAnn != nil {
				leaf.Operands = append(leaf.Operands, parseOperand(p.Name, opAnn))
			}
			if optAnn := findAnnotation(p.Annotations, annOption); optAnn != nil {
				leaf.Options = append(leaf.Options, parseOption(optAnn))
			}
		}
		if aliasAnn := findAnnotation(fn.Annotations, annAlias); aliasAnn != nil {
			leaf.Alias = firstArg(aliasAnn)
		}

		insertLeaf(root, strings.Split(path, "."), full, leaf)
	}
}

// insertLeaf walks/creates group nodes along segs and attaches leaf to the
// final one.
func insertLeaf(root *Node, segs []string, fullPath string, leaf *Leaf) {
	cur := root
	acc := ""
	for i, seg := range segs {
		if acc == "" {
			acc = seg
		} else {
			acc = acc + "." + seg
		}
		child, ok := cur.Children[seg]
		if !ok {
			child = newNode(seg, acc)
			cur.Children[seg] = child
		}
		if i == len(segs)-1 {
			child.Leaf = leaf
			child.FullPath = fullPath
		}
		cur = child
	}
}

func findAnnotation(anns []*ast.Annotation, name string) *ast.Annotation {
	for _, a := range anns {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func description(anns []*ast.Annotation) string {
	if a := findAnnotation(anns, annDescription); a != nil {
		return firstArg(a)
	}
	return ""
}

func parseOperand(name string, a *ast.Annotation) Operand {
	op := Operand{Name: name}
	if v, ok := a.Fields["name"]; ok {
		op.Name = unquote(v)
	}
	op.Type = unquote(a.Fields["type"])
	op.Default = unquote(a.Fields["default"])
	op.Rest = a.Fields["rest"] == "true"
	return op
}

func parseOption(a *ast.Annotation) Option {
	return Option{
		Binding:     unquote(a.Fields["binding"]),
		Short:       unquote(a.Fields["short"]),
		Long:        unquote(a.Fields["long"]),
		Type:        unquote(a.Fields["type"]),
		Description: unquote(a.Fields["description"]),
	}
}

// collectMounts resolves every @mount annotation on an import declaration,
// recursively parsing the referenced submodule (from modcache when
// available) and grafting its own leaves/mounts under a path-prefix and
// module-alias namespace.
func (r *resolver) collectMounts(prog *ast.Program, baseDir string, root *Node, pathPrefix, _ string) {
	for _, decl := range prog.Declarations {
		imp, ok := decl.(*ast.Import)
		if !ok {
			continue
		}
		mountAnn := findMountAnnotation(prog, imp)
		if mountAnn == nil {
			continue
		}

		mountPath := unquote(mountAnn.Fields["path"])
		aliasName := unquote(mountAnn.Fields["as"])
		if aliasName == "" {
			aliasName = imp.Path
		}
		if r.aliases[aliasName] {
			r.diags.Add(diag.Diagnostic{
				Severity: diag.SeverityError,
				Category: diag.Resolution,
				Phase:    diag.PhaseCLI,
				Position: imp.Position,
				Message:  "duplicate module alias " + aliasName,
				Fatal:    true,
			})
			continue
		}
		r.aliases[aliasName] = true
		imp.Alias = aliasName

		subPath := resolveImportPath(baseDir, imp.Path)
		subtree, subImports, err := r.resolveModule(subPath, aliasName)
		if err != nil {
			r.diags.Add(diag.Diagnostic{
				Severity: diag.SeverityError,
				Category: diag.Resolution,
				Phase:    diag.PhaseCLI,
				Position: imp.Position,
				Message:  "cannot open mounted module " + subPath + ": " + err.Error(),
				Fatal:    true,
			})
			continue
		}
		if subtree == nil {
			continue // cycle already reported by resolveModule
		}
		r.imports = append(r.imports, ModuleImport{Path: subPath, Alias: aliasName})
		r.imports = append(r.imports, subImports...)

		full := mountPath
		if pathPrefix != "" {
			full = pathPrefix + "." + mountPath
		}
		graftSite := root
		if mountPath != "" {
			segs := strings.Split(mountPath, ".")
			acc := ""
			for _, seg := range segs {
				if acc == "" {
					acc = seg
				} else {
					acc = acc + "." + seg
				}
				nxt, exists := graftSite.Children[seg]
				if !exists {
					nxt = newNode(seg, acc)
					graftSite.Children[seg] = nxt
				}
				graftSite = nxt
			}
		}
		graft(graftSite, subtree, full)
	}
}

// graft merges a resolved submodule's self-contained subtree (paths and
// prefixes relative to its own root) into site, rewriting every
// descendant's FullPath/ModulePrefix under prefix.
func graft(site *Node, subtree *Node, prefix string) {
	if subtree.Leaf != nil && site.Leaf == nil {
		site.Leaf = subtree.Leaf
	}
	for name, child := range subtree.Children {
		site.Children[name] = child
	}
	rebasePaths(site, prefix)
}

func rebasePaths(n *Node, prefix string) {
	n.FullPath = prefix
	if n.Leaf != nil {
		n.Leaf.ModulePrefix = prefix
	}
	for name, c := range n.Children {
		childPrefix := name
		if prefix != "" {
			childPrefix = prefix + "." + name
		}
		rebasePaths(c, childPrefix)
	}
}

// resolveModule parses (or fetches from modcache) the submodule at path and
// returns its own self-contained command subtree — rooted at "", paths and
// ModulePrefix relative to itself — plus any nested mounts it resolved.
// Returns (nil, nil, nil) when path is already on the current resolution
// stack (a cycle), after adding a fatal resolution diagnostic for it.
func (r *resolver) resolveModule(path, aliasName string) (*Node, []ModuleImport, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}
	if r.visiting[absPath] {
		r.diags.Add(diag.Diagnostic{
			Severity: diag.SeverityError,
			Category: diag.Resolution,
			Phase:    diag.PhaseCLI,
			Message:  "cycle in mount graph at " + path,
			Fatal:    true,
		})
		return nil, nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	hash := contentHash(content)

	if r.cache != nil {
		if cached, ok := r.cache.Get(absPath, hash); ok {
			var frag cachedFragment
			if json.Unmarshal([]byte(cached), &frag) == nil {
				return frag.Node, frag.Imports, nil
			}
		}
	}

	toks, _ := tokenizer.Tokenize(path, string(content))
	subProg, _ := parser.Parse(path, toks)

	node := newNode("", "")
	r.visiting[absPath] = true
	r.collectLeaves(subProg, node, "", aliasName)
	before := len(r.imports)
	r.collectMounts(subProg, filepath.Dir(absPath), node, "", aliasName)
	nested := append([]ModuleImport{}, r.imports[before:]...)
	r.imports = r.imports[:before]
	delete(r.visiting, absPath)

	if r.cache != nil {
		if enc, merr := json.Marshal(cachedFragment{Node: node, Imports: nested}); merr == nil {
			_ = r.cache.Put(absPath, hash, string(enc))
		}
	}

	return node, nested, nil
}

// cachedFragment is the JSON shape stored in a modcache.Fragment row.
type cachedFragment struct {
	Node    *Node          `json:"node"`
	Imports []ModuleImport `json:"imports"`
}

// findMountAnnotation locates an @mount annotation attached at file level
// that references imp by path (a mount annotation is structured:
// `@mount(module: "./util", path: "util", as: "util")`).
func findMountAnnotation(prog *ast.Program, imp *ast.Import) *ast.Annotation {
	for _, a := range prog.Annotations {
		if a.Name != annMount {
			continue
		}
		if unquote(a.Fields["module"]) == imp.Path {
			return a
		}
	}
	return nil
}

func resolveImportPath(baseDir, path string) string {
	p := path
	if !strings.HasSuffix(p, ".fab") {
		p = p + ".fab"
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(baseDir, p)
}

// contentHash keys a modcache row on a submodule's current content, so an
// edited file simply misses the cache instead of serving stale results.
func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// MarshalTree serializes a CommandTree to JSON. The module cache does not
// use it: its rows hold a cachedFragment.
func MarshalTree(t *CommandTree) (string, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
