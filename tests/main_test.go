package tests

import (
	"os"
	"testing"

	"github.com/stretchr/testify/suite"
)

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	t.Log("start autotests")
	suite.Run(t, &TestSuite1{})
}
