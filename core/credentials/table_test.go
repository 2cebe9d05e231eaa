package credentials_test

import (
	"strings"
	"sync"
	"testing"

	"secure-file-server/core/credentials"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantUsers []string
		wantErr   error
	}{
		{"Two Users", "j:joyonta,p:priyanghsu", []string{"j", "p"}, nil},
		{"Whitespace", " j:joyonta , p:priyanghsu ", []string{"j", "p"}, nil},
		{"Trailing Comma", "j:joyonta,", []string{"j"}, nil},
		{"Empty", "", []string{}, nil},
		{"Password With Colon", "j:a:b", []string{"j"}, nil},
		{"Missing Separator", "j", nil, credentials.ErrInvalidEntry},
		{"Empty Username", ":secret", nil, credentials.ErrInvalidEntry},
		{"Duplicate", "j:a,j:b", nil, credentials.ErrDuplicateUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := credentials.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, table)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUsers, table.Usernames())
			assert.Equal(t, len(tt.wantUsers), table.Len())
		})
	}
}

func TestTable_Verify(t *testing.T) {
	table, err := credentials.Parse("j:joyonta,p:priyanghsu,e:")
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     string
		password string
		want     bool
	}{
		{"Exact Match", "j", "joyonta", true},
		{"Second User", "p", "priyanghsu", true},
		{"Wrong Password", "j", "wrongpass", false},
		{"Case Differs", "j", "Joyonta", false},
		{"One Char Short", "j", "joyont", false},
		{"One Char Long", "j", "joyontaa", false},
		{"Other Users Password", "j", "priyanghsu", false},
		{"Unknown User", "x", "joyonta", false},
		{"Username Case", "J", "joyonta", false},
		{"Empty Stored Password", "e", "", true},
		{"Empty Supplied Password", "j", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, table.Verify(tt.user, tt.password))
		})
	}
}

func TestTable_VerifyHashPrefixIsNeverPlaintext(t *testing.T) {
	stored := credentials.HashPrefix + "not-a-hash"
	table, err := credentials.NewTable(map[string]string{"j": stored})
	require.NoError(t, err)

	assert.False(t, table.Verify("j", stored))
}

func TestTable_VerifyHashed(t *testing.T) {
	hash, err := credentials.Hash("joyonta")
	require.NoError(t, err)
	assert.Contains(t, hash, credentials.HashPrefix)

	table, err := credentials.NewTable(map[string]string{"j": hash})
	require.NoError(t, err)

	assert.True(t, table.Verify("j", "joyonta"))
	assert.False(t, table.Verify("j", "wrongpass"))
	assert.False(t, table.Verify("j", hash))
}

func TestNewTable_CopiesInput(t *testing.T) {
	users := map[string]string{"j": "joyonta"}
	table, err := credentials.NewTable(users)
	require.NoError(t, err)

	users["j"] = "changed"
	users["x"] = "added"

	assert.True(t, table.Verify("j", "joyonta"))
	assert.False(t, table.Verify("x", "added"))
}

func TestTable_ConcurrentVerify(t *testing.T) {
	table, err := credentials.Parse("j:joyonta,p:priyanghsu")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.True(t, table.Verify("j", "joyonta"))
			assert.False(t, table.Verify("p", "joyonta"))
		}()
	}
	wg.Wait()
}

func TestConfig_IsValidSource(t *testing.T) {
	assert.True(t, credentials.Config{Source: credentials.SourceEnv}.IsValidSource())
	assert.True(t, credentials.Config{Source: credentials.SourceDatabase}.IsValidSource())
	assert.False(t, credentials.Config{Source: "ldap"}.IsValidSource())
}

func TestParseLines(t *testing.T) {
	hash, err := credentials.Hash("joyonta")
	require.NoError(t, err)

	input := "# authorized users\n\nj:" + hash + "\np:priyanghsu\n"
	table, err := credentials.ParseLines(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"j", "p"}, table.Usernames())
	assert.True(t, table.Verify("j", "joyonta"))
	assert.True(t, table.Verify("p", "priyanghsu"))

	_, err = credentials.ParseLines(strings.NewReader("j:a\nbroken\n"))
	assert.ErrorIs(t, err, credentials.ErrInvalidEntry)
	assert.Contains(t, err.Error(), "line 2")
}
