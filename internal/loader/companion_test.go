package loader

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadHandTrackLandmarkColumns(t *testing.T) {
	csv := "tracking_timestamp_us,tx_right_landmark_0_device,ty_right_landmark_0_device,tz_right_landmark_0_device,right_tracking_confidence\n" +
		"1000,0.1,0.2,0.3,0.9\n" +
		"2000,0.15,0.2,0.3,0.8\n"
	path := writeFile(t, t.TempDir(), "hand_tracking_results.csv", csv)

	track, err := LoadHandTrack(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(track.Samples) != 2 {
		t.Fatalf("samples = %d, want 2", len(track.Samples))
	}
	if !track.HasTimestamps || !track.HasConfidence {
		t.Errorf("HasTimestamps=%v HasConfidence=%v, want both true", track.HasTimestamps, track.HasConfidence)
	}
	if track.Samples[0].Wrist.X != 0.1 || track.Samples[0].Confidence != 0.9 {
		t.Errorf("first sample = %+v", track.Samples[0])
	}
	if track.Samples[1].TimestampUs != 2000 {
		t.Errorf("second timestamp = %d, want 2000", track.Samples[1].TimestampUs)
	}
}

func TestLoadHandTrackPlainColumns(t *testing.T) {
	csv := "wrist_position_x,wrist_position_y,wrist_position_z\n" +
		"0.1,0.2,0.3\n" +
		",0.2,0.3\n"
	path := writeFile(t, t.TempDir(), "hand_tracking.csv", csv)

	track, err := LoadHandTrack(path)
	if err != nil {
		t.Fatal(err)
	}
	if track.HasTimestamps || track.HasConfidence {
		t.Error("optional columns reported present for a plain CSV")
	}
	// The empty cell becomes NaN so the validity filter drops it.
	if !math.IsNaN(track.Samples[1].Wrist.X) {
		t.Errorf("empty cell = %v, want NaN", track.Samples[1].Wrist.X)
	}
}

func TestLoadHandTrackMissingColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "hand_tracking.csv", "foo,bar\n1,2\n")

	if _, err := LoadHandTrack(path); err == nil {
		t.Error("want error for CSV without wrist columns")
	}
}

func TestLoadGazeTrack(t *testing.T) {
	csv := "tracking_timestamp_us,pitch_rads_cpf,left_yaw_rads_cpf,right_yaw_rads_cpf,depth_m\n" +
		"100,0.01,-0.02,0.02,0.45\n" +
		"200,0.02,-0.01,0.01,0.44\n"
	path := writeFile(t, t.TempDir(), "general_eye_gaze.csv", csv)

	track, err := LoadGazeTrack(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(track.Samples) != 2 || !track.HasTimestamps {
		t.Fatalf("track = %+v", track)
	}
	if track.Samples[0].Pitch != 0.01 || track.Samples[0].DepthM != 0.45 {
		t.Errorf("first sample = %+v", track.Samples[0])
	}
}

func TestLoadGazeTrackMissingColumns(t *testing.T) {
	path := writeFile(t, t.TempDir(), "general_eye_gaze.csv", "pitch_rads_cpf\n0.1\n")

	if _, err := LoadGazeTrack(path); err == nil {
		t.Error("want error for CSV without the gaze angle columns")
	}
}

func TestLoadCompanionDataMissingFiles(t *testing.T) {
	hand, gaze := LoadCompanionData(t.TempDir(), zap.NewNop())
	if hand != nil || gaze != nil {
		t.Errorf("want nil tracks for an empty directory, got %v, %v", hand, gaze)
	}
}

func TestLoadCompanionDataAltHandName(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "hand_tracking.csv",
		"wrist_position_x,wrist_position_y,wrist_position_z\n0.1,0.2,0.3\n")

	hand, gaze := LoadCompanionData(dir, zap.NewNop())
	if hand == nil {
		t.Fatal("alternate hand-tracking filename not picked up")
	}
	if gaze != nil {
		t.Error("gaze track loaded from nothing")
	}
}
