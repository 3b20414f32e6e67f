package pip

import (
	"fmt"

	"github.com/ProdeusUnity/Easy-Chatterbox/internal/domain"
)

// The torch stack is pinned as a set: mixing versions across the three
// packages produces broken CUDA/ROCm builds.
var torchSpecs = []string{"torch==2.6.0", "torchvision==0.21.0", "torchaudio==2.6.0"}

// TorchSpecs returns the pinned torch package set.
func TorchSpecs() []string {
	out := make([]string, len(torchSpecs))
	copy(out, torchSpecs)
	return out
}

// TorchIndexURL returns the package source for a backend's torch builds.
func TorchIndexURL(b domain.Backend) string {
	switch b {
	case domain.BackendROCm:
		return "https://download.pytorch.org/whl/rocm6.2.4"
	case domain.BackendCUDA:
		return "https://download.pytorch.org/whl/cu124"
	default:
		return "https://download.pytorch.org/whl/cpu"
	}
}

// FlashAttnURL builds the prebuilt flash-attention wheel locator for the
// CUDA backend. The wheel is specific to OS, CUDA/torch build, and python
// ABI tag.
func FlashAttnURL(os domain.OSFamily, runtimeTag string) string {
	if os == domain.OSWindows {
		return fmt.Sprintf(
			"https://github.com/mjun0812/flash-attention-prebuild-wheels/releases/download/v0.3.9/flash_attn-2.7.4+cu124torch2.6-%s-%s-win_amd64.whl",
			runtimeTag, runtimeTag)
	}
	return fmt.Sprintf(
		"https://github.com/mjun0812/flash-attention-prebuild-wheels/releases/download/v0.3.18/flash_attn-2.7.4+cu124torch2.6-%s-%s-linux_x86_64.whl",
		runtimeTag, runtimeTag)
}

// ChatterboxSpec is installed without dependencies; the pinned list below
// replaces its declared requirements.
const ChatterboxSpec = "chatterbox-tts"

// CoreDependencies is the ordered dependency chain. huggingface_hub must
// install before transformers; omegaconf is required by chatterbox but not
// declared by it.
var CoreDependencies = []string{
	"numpy>=1.24.0,<1.26.0",
	"librosa==0.11.0",
	"safetensors==0.5.3",
	"huggingface_hub>=0.23.2,<1.0",
	"transformers==4.46.3",
	"diffusers==0.29.0",
	"einops",
	"s3tokenizer",
	"conformer==0.3.2",
	"resemble-perth==1.0.1",
	"pykakasi==2.3.0",
	"gradio==5.44.1",
	"soundfile>=0.12.1",
	"audioread>=2.1.9",
	"omegaconf>=2.3.0",
	"pyloudnorm",
	"spacy-pkuseg",
}

// CriticalPackages are probed for importability after installation.
var CriticalPackages = []string{
	"torch", "torchaudio", "librosa", "safetensors", "transformers",
	"diffusers", "conformer", "s3tokenizer", "resemble_perth", "einops",
	"huggingface_hub", "soundfile", "audioread",
}
