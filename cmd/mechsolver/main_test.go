package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mechsolver/internal/calc"
	"github.com/san-kum/mechsolver/internal/catalog"
	"github.com/san-kum/mechsolver/internal/config"
)

func TestParseSets(t *testing.T) {
	args, err := parseSets([]string{"velocity=20", " angle = 45 ", "teeth=20,40", "note="})
	require.NoError(t, err)
	assert.Equal(t, catalog.Args{"velocity": "20", "angle": "45", "teeth": "20,40", "note": ""}, args)

	for _, bad := range []string{"velocity", "=3"} {
		_, err := parseSets([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestBuildArgsLayersOverPreset(t *testing.T) {
	c := config.DefaultConfig()
	args, err := buildArgs(c, "kinematics/projectile", "cannon", []string{"angle=30"})
	require.NoError(t, err)
	assert.Equal(t, "30", args["angle"])
	for k := range config.GetPreset("kinematics/projectile", "cannon").Args {
		assert.Contains(t, args, k)
	}

	_, err = buildArgs(c, "kinematics/projectile", "nope", nil)
	assert.True(t, errors.Is(err, calc.ErrNotFound))
}

func TestParamRange(t *testing.T) {
	reg := catalog.NewRegistry()
	f, err := reg.Get("fluids/pump_power")
	require.NoError(t, err)

	p, _ := f.Param("efficiency")
	assert.Equal(t, "[0, 1]", paramRange(p))
	p, _ = f.Param("head")
	assert.Equal(t, "", paramRange(p))
}
