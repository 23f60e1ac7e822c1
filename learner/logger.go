package learner

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "learner")
