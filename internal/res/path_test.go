// Copyright 2024 Humanitec
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package res

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinEmpty(t *testing.T) {
	_, ok := JoinResolve("", "")
	assert.False(t, ok)

	p, ok := JoinResolve("", "test/path")
	assert.True(t, ok)
	assert.Equal(t, "test/path", p)

	p, ok = JoinResolve("test/path", "")
	assert.True(t, ok)
	assert.Equal(t, "test/path", p)
}

func TestJoinLocal(t *testing.T) {
	p, ok := JoinResolve("a/b/c", "../d")
	assert.True(t, ok)
	assert.Equal(t, "a/b/d", p)

	p, ok = JoinResolve("a/b/c", "../../d")
	assert.True(t, ok)
	assert.Equal(t, "a/d", p)

	_, ok = JoinResolve("a", "../../d")
	assert.False(t, ok)

	_, ok = JoinResolve("", "..")
	assert.False(t, ok)
}

func TestUseParsingAbsolute(t *testing.T) {
	u := ParseUse("/foo/bar")
	assert.NotNil(t, u.Valid)
	assert.Equal(t, UseAbsolute, u.Valid.Kind)
	assert.Equal(t, "foo/bar", u.Valid.Path)

	u = ParseUse("/foo/bar/")
	assert.Nil(t, u.Valid)
}

func TestUseParsingRelative(t *testing.T) {
	u := ParseUse("./foo/bar")
	assert.NotNil(t, u.Valid)
	assert.Equal(t, UseRelative, u.Valid.Kind)

	u = ParseUse("../foo/bar")
	assert.NotNil(t, u.Valid)
	assert.Equal(t, UseRelative, u.Valid.Kind)

	u = ParseUse("./foo/bar/")
	assert.Nil(t, u.Valid)
}

func TestUseParsingRemote(t *testing.T) {
	u := ParseUse("owner/repo/path/to/file.yaml")
	assert.NotNil(t, u.Valid)
	assert.Equal(t, UseRemote, u.Valid.Kind)
	assert.Equal(t, "owner", u.Valid.Owner)
	assert.Equal(t, "repo", u.Valid.Repo)
	assert.Equal(t, "path/to/file.yaml", u.Valid.RemotePath)
	assert.Nil(t, u.Valid.Reference)

	u = ParseUse(".foo/hello/bar/giz")
	assert.NotNil(t, u.Valid)
	assert.Equal(t, ".foo", u.Valid.Owner)
	assert.Equal(t, "bar/giz", u.Valid.RemotePath)

	u = ParseUse("foo/hello/bar/giz/biz:")
	assert.NotNil(t, u.Valid)
	assert.Nil(t, u.Valid.Reference)

	u = ParseUse("foo/hello/bar:v1")
	assert.NotNil(t, u.Valid)
	assert.Equal(t, "bar", u.Valid.RemotePath)
	assert.Equal(t, "v1", *u.Valid.Reference)

	u = ParseUse("owner/repo")
	assert.Nil(t, u.Valid)

	u = ParseUse("owner/repo/")
	assert.Nil(t, u.Valid)
}

func TestResolveRelative(t *testing.T) {
	from := Path{Path: "a/b/current.yaml"}
	use := ParseUse("./sibling.yaml")
	p, err := from.Resolve(*use.Valid)
	assert.NoError(t, err)
	assert.Equal(t, "a/b/sibling.yaml", p.Path)

	use = ParseUse("../other.yaml")
	p, err = from.Resolve(*use.Valid)
	assert.NoError(t, err)
	assert.Equal(t, "a/other.yaml", p.Path)
}

func TestResolveAbsolute(t *testing.T) {
	from := Path{Path: "a/b/current.yaml"}
	use := ParseUse("/x/y.yaml")
	p, err := from.Resolve(*use.Valid)
	assert.NoError(t, err)
	assert.Equal(t, "x/y.yaml", p.Path)
	assert.True(t, p.IsLocal())
}

func TestResolveRemote(t *testing.T) {
	from := Path{Path: "a/b/current.yaml"}
	use := ParseUse("owner/repo/x/y.yaml:v2")
	p, err := from.Resolve(*use.Valid)
	assert.NoError(t, err)
	assert.Equal(t, "x/y.yaml", p.Path)
	assert.Equal(t, "owner/repo:v2", p.Remote)
	assert.False(t, p.IsLocal())
}
