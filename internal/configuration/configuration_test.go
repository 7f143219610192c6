package configuration

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockConfigProvider struct {
	mock.Mock
}

func (m *mockConfigProvider) Read(filenames ...string) (map[string]string, error) {
	args := m.Called(filenames)
	envMap, _ := args.Get(0).(map[string]string)

	return envMap, args.Error(1)
}

func TestMapKeyToBool(t *testing.T) {
	t.Parallel()

	c := &ConfigProviderImpl{}
	envMap := map[string]string{"ON": "true", "OFF": "0", "BAD": "maybe"}

	v, err := c.MapKeyToBool(envMap, "ON", false)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = c.MapKeyToBool(envMap, "OFF", true)
	require.NoError(t, err)
	assert.False(t, v)

	v, err = c.MapKeyToBool(envMap, "UNSET", true)
	require.NoError(t, err)
	assert.True(t, v)

	_, err = c.MapKeyToBool(envMap, "BAD", true)
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestMapKeyToSize(t *testing.T) {
	t.Parallel()

	c := &ConfigProviderImpl{}

	tests := []struct {
		name    string
		value   string
		want    uint64
		wantErr bool
	}{
		{"Plain", "1024", 1024, false},
		{"SI", "1 MB", 1000 * 1000, false},
		{"IEC", "1GiB", 1 << 30, false},
		{"Unset", "", 42, false},
		{"Invalid", "lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := c.MapKeyToSize(map[string]string{"SIZE": tt.value}, "SIZE", 42)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidValue)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	reader := &mockConfigProvider{}
	reader.On("Read", []string{"davtree.env"}).Return(map[string]string{
		KeyRoot:       "/srv/share",
		KeyMinFree:    "2 GiB",
		KeyVerifyHash: "false",
	}, nil)

	c := &ConfigProviderImpl{GenericConfigReader: reader}
	config := &AppConfiguration{VerifyHash: true, PreserveOwner: true}

	require.NoError(t, c.Apply(config, "davtree.env"))

	assert.Equal(t, "/srv/share", config.Root)
	assert.Equal(t, uint64(2<<30), config.MinFree)
	assert.False(t, config.VerifyHash)
	assert.True(t, config.PreserveOwner)

	opts := config.TreeOptions()
	assert.Equal(t, config.MinFree, opts.MinFree)
	assert.False(t, opts.VerifyHash)
	assert.True(t, opts.PreserveOwner)

	reader.AssertExpectations(t)
}

func TestApply_KeepsRootWhenUnset(t *testing.T) {
	t.Parallel()

	reader := &mockConfigProvider{}
	reader.On("Read", []string{"davtree.env"}).Return(map[string]string{}, nil)

	c := &ConfigProviderImpl{GenericConfigReader: reader}
	config := &AppConfiguration{Root: "/data"}

	require.NoError(t, c.Apply(config, "davtree.env"))
	assert.Equal(t, "/data", config.Root)
}

func TestApply_Errors(t *testing.T) {
	t.Parallel()

	readErr := errors.New("unreadable")

	t.Run("Read", func(t *testing.T) {
		t.Parallel()

		reader := &mockConfigProvider{}
		reader.On("Read", []string{"davtree.env"}).Return(nil, readErr)

		c := &ConfigProviderImpl{GenericConfigReader: reader}
		require.ErrorIs(t, c.Apply(NewAppConfiguration(), "davtree.env"), readErr)
	})

	t.Run("InvalidValue", func(t *testing.T) {
		t.Parallel()

		reader := &mockConfigProvider{}
		reader.On("Read", []string{"davtree.env"}).Return(map[string]string{KeyPreserveOwner: "sometimes"}, nil)

		c := &ConfigProviderImpl{GenericConfigReader: reader}
		require.ErrorIs(t, c.Apply(NewAppConfiguration(), "davtree.env"), ErrInvalidValue)
	})
}

func TestGodotenvProvider_Read(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	first := filepath.Join(dir, "first.env")
	second := filepath.Join(dir, "second.env")

	require.NoError(t, os.WriteFile(first, []byte("# comment\nDAVTREE_ROOT=/srv/share\nDAVTREE_MIN_FREE=\"1 GiB\"\n"), 0o600))
	require.NoError(t, os.WriteFile(second, []byte("DAVTREE_ROOT=/srv/other\n"), 0o600))

	envMap, err := (&GodotenvProvider{}).Read(first, second)
	require.NoError(t, err)

	assert.Equal(t, "/srv/other", envMap[KeyRoot])
	assert.Equal(t, "1 GiB", envMap[KeyMinFree])
}

func TestGodotenvProvider_ReadMissing(t *testing.T) {
	t.Parallel()

	_, err := (&GodotenvProvider{}).Read(filepath.Join(t.TempDir(), "missing.env"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
