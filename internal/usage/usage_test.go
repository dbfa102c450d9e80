package usage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stefsoma/appcheck-cli/internal/analyzer"
	"github.com/stefsoma/appcheck-cli/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func corpusOf(t *testing.T, files map[string]string) *scanner.Corpus {
	t.Helper()
	dir := t.TempDir()
	var infos []scanner.FileInfo
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
		infos = append(infos, scanner.FileInfo{Path: path, Language: scanner.LanguageJavaScript})
	}
	corpus, err := scanner.NewCorpus(infos, 0)
	require.NoError(t, err)
	return corpus
}

func scan(t *testing.T, files map[string]string, fn string, keys ...string) analyzer.UsageResult {
	t.Helper()
	result, err := New(fn, nil).Scan(context.Background(), corpusOf(t, files), analyzer.NewKeySet(keys...))
	require.NoError(t, err)
	return result
}

func TestScan_ExactMatch(t *testing.T) {
	result := scan(t, map[string]string{"app.js": `const title = t("home.title");`}, "t", "home.title")

	assert.Equal(t, []string{"home.title"}, result.Used.Sorted())
	assert.Empty(t, result.Unused.Sorted())
}

func TestScan_NoPrefixMatch(t *testing.T) {
	result := scan(t, map[string]string{"app.js": `t("home.title2")`}, "t", "home.title")

	assert.Empty(t, result.Used.Sorted())
	assert.Equal(t, []string{"home.title"}, result.Unused.Sorted())
}

func TestScan_NoSuffixCollision(t *testing.T) {
	result := scan(t, map[string]string{"app.js": `t('a.b.c')`}, "t", "b.c", "a.b.c")

	assert.Equal(t, []string{"a.b.c"}, result.Used.Sorted())
	assert.Equal(t, []string{"b.c"}, result.Unused.Sorted())
}

func TestScan_QuotesAndMultipleCalls(t *testing.T) {
	files := map[string]string{
		"a.jsx": `<p>{t('nav.home')}</p><p>{t("nav.about")}</p>`,
		"b.ts":  "export const x = [t(\"one\"), t('two')]\nconst y = t(`tpl`)",
	}
	result := scan(t, files, "t", "nav.home", "nav.about", "one", "two", "tpl", "never")

	assert.Equal(t, []string{"nav.about", "nav.home", "one", "two"}, result.Used.Sorted())
	assert.Equal(t, []string{"never", "tpl"}, result.Unused.Sorted())
}

func TestScan_CallsInsideLongerNames(t *testing.T) {
	files := map[string]string{
		"spec.js": `it("renders"); format("x");`,
		"app.js":  `i18n.t("dotted"); $t("vue")`,
	}
	result := scan(t, files, "t", "renders", "x", "dotted", "vue", "absent")

	assert.Equal(t, []string{"dotted", "renders", "vue", "x"}, result.Used.Sorted())
	assert.Equal(t, []string{"absent"}, result.Unused.Sorted())
}

func TestScan_VueTemplateCall(t *testing.T) {
	files := map[string]string{"Home.vue": `<template><p>{{ $t('home.title') }}</p></template>`}
	result := scan(t, files, "t", "home.title", "home.subtitle")

	assert.Equal(t, []string{"home.title"}, result.Used.Sorted())
	assert.Equal(t, []string{"home.subtitle"}, result.Unused.Sorted())
}

func TestScan_CustomFunctionName(t *testing.T) {
	files := map[string]string{"app.js": `translate("a"); t("b"); i18n.translate('c')`}
	result := scan(t, files, "translate", "a", "b", "c")

	assert.Equal(t, []string{"a", "c"}, result.Used.Sorted())
	assert.Equal(t, []string{"b"}, result.Unused.Sorted())
}

func TestScan_SpecialCharacterKeys(t *testing.T) {
	files := map[string]string{"app.js": `t("it's here"); t("a(b)"); t("x.*")`}
	result := scan(t, files, "t", "it's here", "a(b)", "x.*", "x.y")

	assert.Equal(t, []string{"a(b)", "it's here", "x.*"}, result.Used.Sorted())
	assert.Equal(t, []string{"x.y"}, result.Unused.Sorted())
}

func TestScan_MatchesCallPattern(t *testing.T) {
	content := `t("a"); t('b.c'); xt("d"); t( "e" ); t("f")` + "\n" + `t("g'); t("h"`
	keys := []string{"a", "b.c", "d", "e", "f", "g", "h", "b"}
	result := scan(t, map[string]string{"app.js": content}, "t", keys...)

	for _, k := range keys {
		want := CallPattern("t", k).MatchString(content)
		assert.Equal(t, want, result.Used.Has(k), "key %q", k)
	}
}

func TestScan_EveryKeyInOneSet(t *testing.T) {
	keys := []string{"a", "b", "c"}
	result := scan(t, map[string]string{"x.js": `t("b")`}, "t", keys...)

	for _, k := range keys {
		assert.NotEqual(t, result.Used.Has(k), result.Unused.Has(k), "key %q", k)
	}
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("t", nil).Scan(ctx, corpusOf(t, map[string]string{"a.js": `t("a")`}), analyzer.NewKeySet("a"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScan_UnreadableFileSkipped(t *testing.T) {
	corpus, err := scanner.NewCorpus([]scanner.FileInfo{{Path: filepath.Join(t.TempDir(), "gone.js")}}, 0)
	require.NoError(t, err)

	result, err := New("t", nil).Scan(context.Background(), corpus, analyzer.NewKeySet("a"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, result.Unused.Sorted())
}
