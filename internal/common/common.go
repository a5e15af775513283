package common

const ApplicationName = "reg-membership-service"
