package jsonx

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "forgekit/pkg/errors"
)

const sample = `{
	"login": "alice",
	"name": "",
	"bio": null,
	"count": 12,
	"negative": -1,
	"number": 42,
	"code": "I7ABC",
	"public": true,
	"created_at": "2024-03-01T08:00:00Z",
	"closed_at": "",
	"owner": {"login": "org"},
	"labels": [{"name": "bug"}, {"name": "p1"}],
	"calendar": {"2024.01.01": 3, "20240102": 4}
}`

func TestReaderFields(t *testing.T) {
	r, err := Parse("用户信息", []byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "alice", r.Str("login"))
	assert.Equal(t, "alice", r.NonEmpty("login"))
	assert.Nil(t, r.OptStr("name"))
	assert.Nil(t, r.OptStr("bio"))
	assert.Equal(t, "fallback", r.StrOr("missing", "fallback"))
	assert.Equal(t, uint64(12), r.Uint("count"))
	assert.Equal(t, uint64(0), r.Uint("negative"))
	assert.Equal(t, uint64(0), r.Uint("missing"))
	assert.Equal(t, "42", r.NumberString("number"))
	assert.Equal(t, "I7ABC", r.NumberString("code"))
	assert.True(t, r.Bool("public"))
	assert.True(t, r.ReqBool("public"))
	assert.Equal(t, time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC), r.Time("created_at"))
	assert.Nil(t, r.OptTime("closed_at"))
	assert.Equal(t, "org", r.Object("owner").NonEmpty("login"))
	assert.Nil(t, r.OptObject("missing"))
	assert.Len(t, r.Array("labels"), 2)
	assert.Nil(t, r.Array("missing"))
	assert.True(t, r.Exists("owner"))
	assert.False(t, r.Exists("bio"))
	assert.NoError(t, r.Err())
}

func TestReaderKeepsFirstError(t *testing.T) {
	r, err := Parse("仓库信息", []byte(sample))
	require.NoError(t, err)

	r.NonEmpty("name")
	r.Object("owner").Str("id")
	r.Time("login")

	err = r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, pkgErrors.ErrMalformedResponse))
	assert.Contains(t, err.Error(), "仓库信息")
	assert.Contains(t, err.Error(), "name")
	assert.NotContains(t, err.Error(), "owner.id")
}

func TestReaderNestedPrefix(t *testing.T) {
	r, err := Parse("Issue", []byte(sample))
	require.NoError(t, err)

	labels := r.Array("labels")
	labels[1].NonEmpty("color")
	require.Error(t, r.Err())
	assert.Contains(t, r.Err().Error(), "labels.1.color")
}

func TestEntriesEscapesKeys(t *testing.T) {
	r, err := Parse("贡献日历", []byte(sample))
	require.NoError(t, err)

	keys, values := r.Object("calendar").Entries()
	require.Equal(t, []string{"2024.01.01", "20240102"}, keys)
	assert.Equal(t, uint64(3), values[0].ReqUint(""))
	assert.Equal(t, uint64(4), values[1].ReqUint(""))
	assert.NoError(t, r.Err())
}

func TestParseRejectsInvalid(t *testing.T) {
	_, err := Parse("用户信息", []byte(`{"login":`))
	assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err))

	_, err = ParseArray("仓库列表", []byte(`{"login":"a"}`))
	assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err))

	items, err := ParseArray("仓库列表", []byte(`[{"a":1},{"a":2}]`))
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSetSplicesFields(t *testing.T) {
	out, err := Set([]byte(`{"commit":{"author":{"name":"a"}}}`), "commit.author.avatar_url", "https://x/a.png")
	require.NoError(t, err)

	r, err := Parse("提交信息", out)
	require.NoError(t, err)
	assert.Equal(t, "https://x/a.png", r.NonEmpty("commit.author.avatar_url"))
	assert.Equal(t, "a", r.Str("commit.author.name"))

	out, err = SetRaw(out, "files", []byte(`[{"filename":"a.go"}]`))
	require.NoError(t, err)
	r, err = Parse("提交信息", out)
	require.NoError(t, err)
	assert.Len(t, r.Array("files"), 1)
}

type named struct {
	Name string
}

func toNamed(r *Reader) (*named, error) {
	n := &named{Name: r.NonEmpty("name")}
	return n, r.Err()
}

func TestDecodeList(t *testing.T) {
	list, err := DecodeList("标签", []byte(`[{"name":"a"},{"name":"b"}]`), toNamed)
	require.NoError(t, err)
	assert.Equal(t, []named{{"a"}, {"b"}}, list)

	_, err = DecodeList("标签", []byte(`[{"name":"a"},{"name":""}]`), toNamed)
	assert.Equal(t, pkgErrors.CodeMalformedResponse, pkgErrors.Kind(err))

	one, err := Decode("标签", []byte(`{"name":"c"}`), toNamed)
	require.NoError(t, err)
	assert.Equal(t, "c", one.Name)
}
