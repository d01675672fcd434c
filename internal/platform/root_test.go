package platform

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFindLocalStore(t *testing.T) {
	// /tmp/
	//   project/ (.dictnotes.json)
	//     subdir/
	//       nested/
	//   empty/
	//     .dictnotes.json/ (directory, ignored)

	baseDir := t.TempDir()
	projectDir := filepath.Join(baseDir, "project")
	subDir := filepath.Join(projectDir, "subdir")
	nestedDir := filepath.Join(subDir, "nested")
	emptyDir := filepath.Join(baseDir, "empty")

	if err := os.MkdirAll(nestedDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(emptyDir, LocalStoreName), 0755); err != nil {
		t.Fatal(err)
	}

	marker := filepath.Join(projectDir, LocalStoreName)
	if err := os.WriteFile(marker, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		startPath string
		want      string
		wantErr   bool
	}{
		{
			name:      "Start at Root",
			startPath: projectDir,
			want:      marker,
		},
		{
			name:      "Start in Subdir",
			startPath: subDir,
			want:      marker,
		},
		{
			name:      "Start Nested Deeply",
			startPath: nestedDir,
			want:      marker,
		},
		{
			name:      "Directory Marker Ignored",
			startPath: emptyDir,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FindLocalStore(tt.startPath)
			if (err != nil) != tt.wantErr {
				t.Errorf("FindLocalStore() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if got != "" && filepath.Clean(got) != filepath.Clean(tt.want) {
				t.Errorf("FindLocalStore() = %v, want %v", got, tt.want)
			}
		})
	}
}
