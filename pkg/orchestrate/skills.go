package orchestrate

import (
	"io"
	"os"
	"path/filepath"

	"github.com/ormasoftchile/gertx/pkg/gerr"
	"github.com/ormasoftchile/gertx/pkg/ir"
)

// writeSkillResources copies a SkillDocument's `<Resource path="..."/>`
// attachments verbatim into a folder named after the skill's basename
// (`<dir>/<basename>/`), next to the compiled Markdown (SPEC_FULL.md's
// supplemented "SkillDocument auxiliary file attachments" feature).
func writeSkillResources(cfg Config, doc *ir.SkillDocument, sourcePath, basename string) error {
	if len(doc.Resources) == 0 || cfg.DryRun {
		return nil
	}
	dir := cfg.SkillsOut
	if doc.Folder != "" {
		dir = filepath.Join(dir, doc.Folder)
	}
	outDir := filepath.Join(dir, basename)
	for _, res := range doc.Resources {
		srcPath := filepath.Join(filepath.Dir(sourcePath), res.Path)
		dstPath := filepath.Join(outDir, filepath.Base(res.Path))
		if err := copyFile(srcPath, dstPath); err != nil {
			return gerr.New(gerr.Config, sourcePath, 0, "copying skill resource %q: %v", res.Path, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, in)
	return err
}
