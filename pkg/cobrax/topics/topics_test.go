package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"help/strategies.md":      {Data: []byte("# Strategies\n\nHow outputs are built")},
		"help/option-append.txt":  {Data: []byte("Append to an existing output")},
		"help/nested/codecs.md":   {Data: []byte("# Codecs")},
		"help/notes.txxt":         {Data: []byte("Custom extension")},
		"help/ignore.json":        {Data: []byte("{}")},
		"other/outside-root.md":   {Data: []byte("not a topic")},
		"help/option-force.md":    {Data: []byte("Overwrite existing output")},
		"help/nested/deeper/x.md": {Data: []byte("deep")},
	}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	t.Run("default extensions", func(t *testing.T) {
		tm := New(testFS(), "help")
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"strategies", true, "# Strategies\n\nHow outputs are built"},
			{"option-append", true, "Append to an existing output"},
			{"codecs", true, "# Codecs"},
			{"x", true, "deep"},
			{"notes", false, ""},
			{"ignore", false, ""},
			{"outside-root", false, ""},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom extensions", func(t *testing.T) {
		tm := NewWithOptions(testFS(), "help", Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())
		assert.Equal(t, []string{"notes"}, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(testFS(), "help")
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input string
		want  string
		found bool
	}{
		{"strategies", "strategies", true},
		{"append", "option-append", true},
		{"--append", "option-append", true},
		{"-force", "option-force", true},
		{"option-force", "option-force", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, found := tm.GetTopic(tt.input)
			assert.Equal(t, tt.found, found)
			if found {
				assert.Equal(t, tt.want, topic.Name)
			}
		})
	}
}

func TestTopicManager_MissingRoot(t *testing.T) {
	tm := New(fstest.MapFS{}, "help")
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())

	var out bytes.Buffer
	tm.printTopicList(&out, "app")
	assert.Equal(t, "No help topics available.\n", out.String())
}

func TestPrintTopicList(t *testing.T) {
	tm := New(testFS(), "help")
	require.NoError(t, tm.scanTopics())

	var out bytes.Buffer
	tm.printTopicList(&out, "app")

	s := out.String()
	assert.Contains(t, s, "General topics:\n  codecs\n  strategies\n  x\n")
	assert.Contains(t, s, "Option topics:\n  --append\n  --force\n")
	assert.Contains(t, s, "Use 'app help <topic>'")
}

type upperRenderer struct{ formats []string }

func (r *upperRenderer) Render(content string, format string) string {
	r.formats = append(r.formats, format)
	return "[" + content + "]"
}

func TestHelpCommand(t *testing.T) {
	newRoot := func() (*cobra.Command, *upperRenderer) {
		root := &cobra.Command{Use: "app", Short: "test app"}
		root.AddCommand(&cobra.Command{Use: "merge", Short: "merge things", Run: func(*cobra.Command, []string) {}})
		r := &upperRenderer{}
		_, err := InitializeWithOptions(root, testFS(), "help", Options{Renderer: r})
		require.NoError(t, err)
		return root, r
	}

	run := func(root *cobra.Command, args ...string) string {
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute())
		return out.String()
	}

	t.Run("topic", func(t *testing.T) {
		root, r := newRoot()
		assert.Equal(t, "[# Strategies\n\nHow outputs are built]", run(root, "help", "strategies"))
		assert.Equal(t, []string{".md"}, r.formats)
	})

	t.Run("option topic", func(t *testing.T) {
		root, r := newRoot()
		assert.Equal(t, "[Append to an existing output]", run(root, "help", "--append"))
		assert.Equal(t, []string{".txt"}, r.formats)
	})

	t.Run("topic list", func(t *testing.T) {
		root, _ := newRoot()
		assert.Contains(t, run(root, "help", "topics"), "Available help topics:")
	})

	t.Run("command help", func(t *testing.T) {
		root, _ := newRoot()
		assert.Contains(t, run(root, "help", "merge"), "merge things")
	})

	t.Run("single help command", func(t *testing.T) {
		root, _ := newRoot()
		count := 0
		for _, c := range root.Commands() {
			if c.Name() == "help" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestGlamourRenderer_PassThrough(t *testing.T) {
	r := NewGlamourRenderer(60)
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))

	r.Style = "notty"
	out := r.Render("# Title\n\nbody", ".md")
	assert.Contains(t, out, "Title")
	assert.Contains(t, out, "body")
}
