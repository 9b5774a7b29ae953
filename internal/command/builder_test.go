package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irixaligned/swat/internal/manifest"
)

func ptr(s string) *string { return &s }

func flashStep(partition, filename string) manifest.Step {
	return manifest.Step{Operation: manifest.OpFlash, Partition: ptr(partition), Filename: ptr(filename)}
}

func indexOf(args []string, want string) int {
	for i, a := range args {
		if a == want {
			return i
		}
	}
	return -1
}

func TestBuildFlash(t *testing.T) {
	cmd := Build("fastboot", flashStep("boot_a", "boot.img"), false, "/fw/boot.img")

	assert.Equal(t, []string{"fastboot", "flash", "boot_a", "/fw/boot.img"}, cmd.Args)
	assert.Equal(t, `Flashing: "boot.img" to "boot_a"`, cmd.Description)
	assert.Equal(t, `fastboot flash boot_a "/fw/boot.img"`, cmd.String())
}

func TestBuildFlashVbmetaWithAVBDisabled(t *testing.T) {
	cmd := Build("fastboot", flashStep("vbmeta_a", "vbmeta.img"), true, "/fw/vbmeta.img")

	require.Len(t, cmd.Args, 6)
	verity := indexOf(cmd.Args, "--disable-verity")
	verification := indexOf(cmd.Args, "--disable-verification")
	file := indexOf(cmd.Args, "/fw/vbmeta.img")
	require.NotEqual(t, -1, verity)
	require.NotEqual(t, -1, verification)
	assert.Less(t, verity, file)
	assert.Less(t, verification, file)
	assert.Equal(t, len(cmd.Args)-1, file, "image path must be the last argument")
}

func TestBuildFlashVbmetaSystemPartition(t *testing.T) {
	cmd := Build("fastboot", flashStep("vbmeta_system_b", "vbmeta_system.img"), true, "/fw/vbmeta_system.img")
	assert.Contains(t, cmd.Args, "--disable-verity")
}

func TestBuildFlashNonVbmetaIgnoresAVBPolicy(t *testing.T) {
	cmd := Build("fastboot", flashStep("boot", "boot.img"), true, "/fw/boot.img")
	assert.NotContains(t, cmd.Args, "--disable-verity")
	assert.NotContains(t, cmd.Args, "--disable-verification")
}

func TestBuildFlashVbmetaMatchIsCaseSensitive(t *testing.T) {
	cmd := Build("fastboot", flashStep("VBMETA", "vbmeta.img"), true, "/fw/vbmeta.img")
	assert.NotContains(t, cmd.Args, "--disable-verity")
}

func TestBuildFlashVbmetaWithoutPolicy(t *testing.T) {
	cmd := Build("fastboot", flashStep("vbmeta", "vbmeta.img"), false, "/fw/vbmeta.img")
	assert.Equal(t, []string{"fastboot", "flash", "vbmeta", "/fw/vbmeta.img"}, cmd.Args)
}

func TestBuildErase(t *testing.T) {
	step := manifest.Step{Operation: manifest.OpErase, Partition: ptr("userdata")}
	cmd := Build("/opt/platform-tools/fastboot", step, true, "")

	assert.Equal(t, []string{"/opt/platform-tools/fastboot", "erase", "userdata"}, cmd.Args)
	assert.Equal(t, `Erasing: "userdata"`, cmd.Description)
}

func TestBuildOtherWithArgument(t *testing.T) {
	step := manifest.Step{Operation: "oem", Var: ptr("fb_mode_set")}
	cmd := Build("fastboot", step, false, "")

	assert.Equal(t, []string{"fastboot", "oem", "fb_mode_set"}, cmd.Args)
	assert.Equal(t, `Operation: "oem" performed with argument "fb_mode_set"`, cmd.Description)
}

func TestBuildOtherArgumentSplitsOnWhitespace(t *testing.T) {
	step := manifest.Step{Operation: "oem", Var: ptr("config carrier retus")}
	cmd := Build("fastboot", step, false, "")
	assert.Equal(t, []string{"fastboot", "oem", "config", "carrier", "retus"}, cmd.Args)
}

func TestBuildOtherWithoutArgument(t *testing.T) {
	step := manifest.Step{Operation: "reboot-bootloader"}
	cmd := Build("fastboot", step, false, "")

	assert.Equal(t, []string{"fastboot", "reboot-bootloader"}, cmd.Args)
	assert.Equal(t, `Operation: "reboot-bootloader" performed`, cmd.Description)
}

func TestBuildOtherWithEmptyArgument(t *testing.T) {
	step := manifest.Step{Operation: "getvar", Var: ptr("")}
	cmd := Build("fastboot", step, false, "")

	assert.Equal(t, []string{"fastboot", "getvar"}, cmd.Args)
	assert.Equal(t, `Operation: "getvar" performed with argument ""`, cmd.Description)
}

func TestBuildIgnoresFileForNonFlash(t *testing.T) {
	step := manifest.Step{Operation: manifest.OpErase, Partition: ptr("cache"), Filename: ptr("cache.img")}
	cmd := Build("fastboot", step, false, "/fw/cache.img")
	assert.NotContains(t, cmd.Args, "/fw/cache.img")
}

func TestBuildIsDeterministic(t *testing.T) {
	step := flashStep("vbmeta_a", "vbmeta.img")
	first := Build("fastboot", step, true, "/fw/vbmeta.img")
	for i := 0; i < 10; i++ {
		again := Build("fastboot", step, true, "/fw/vbmeta.img")
		require.Equal(t, first.Args, again.Args)
		require.Equal(t, first.Description, again.Description)
		require.Equal(t, first.String(), again.String())
	}
}

func TestStringQuotesPathWithSpaces(t *testing.T) {
	cmd := Build("fastboot", flashStep("boot", "boot.img"), false, "/home/me/My Firmware/boot.img")
	assert.Equal(t, `fastboot flash boot "/home/me/My Firmware/boot.img"`, cmd.String())
}
